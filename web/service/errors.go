// Package service implements the business layer of SecondPlan: credential
// checks, registration, resource CRUD and file uploads. Services are plain
// structs operating on the shared gorm handle.
package service

import "errors"

// ErrNotFound marks a lookup for an id that has no row. Controllers map it
// to a 404 envelope.
var ErrNotFound = errors.New("record not found")

// ValidationError aggregates field-level input problems. Controllers map it
// to a 400 envelope; it never reaches storage.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// UploadErrorKind discriminates upload failures so the controller can pick
// the right status code.
type UploadErrorKind int

const (
	UploadInvalidType UploadErrorKind = iota // 400
	UploadTooLarge                           // 400
	UploadIO                                 // 500
)

// UploadError describes a rejected or failed file upload.
type UploadError struct {
	Kind    UploadErrorKind
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
