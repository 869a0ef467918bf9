package service

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"secondplan/config"
	"secondplan/util/common"

	"github.com/google/uuid"
)

// UploadKind selects the allow-list for an uploaded file. Images accept
// jpeg/png; receipts and posters additionally accept pdf.
type UploadKind string

const (
	UploadImage   UploadKind = "image"
	UploadReceipt UploadKind = "receipt"
	UploadPoster  UploadKind = "poster"
)

// extByContentType maps sniffed content types to stored extensions. The
// client-supplied filename and content type are never trusted.
var extByContentType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type UploadService struct{}

// Save validates and persists a single uploaded file, returning the relative
// path to store in the owning row. The actual content type is sniffed from
// the first 512 bytes.
func (s *UploadService) Save(header *multipart.FileHeader, kind UploadKind) (string, error) {
	maxBytes := config.GetUploadMaxBytes()
	if header.Size > maxBytes {
		return "", &UploadError{
			Kind:    UploadTooLarge,
			Message: "File is too large. Maximum size is " + common.FormatBytes(maxBytes) + ".",
		}
	}

	file, err := header.Open()
	if err != nil {
		return "", &UploadError{Kind: UploadIO, Message: "Could not read the uploaded file.", Err: err}
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", &UploadError{Kind: UploadIO, Message: "Could not read the uploaded file.", Err: err}
	}
	contentType := http.DetectContentType(sniff[:n])

	ext, err := s.allowedExt(contentType, kind)
	if err != nil {
		return "", err
	}

	folder := config.GetUploadFolder()
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", &UploadError{Kind: UploadIO, Message: "Could not store the uploaded file.", Err: err}
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return "", &UploadError{Kind: UploadIO, Message: "Could not store the uploaded file.", Err: err}
	}
	defer dst.Close()

	if _, err := dst.Write(sniff[:n]); err != nil {
		return "", &UploadError{Kind: UploadIO, Message: "Could not store the uploaded file.", Err: err}
	}
	if _, err := io.Copy(dst, file); err != nil {
		return "", &UploadError{Kind: UploadIO, Message: "Could not store the uploaded file.", Err: err}
	}

	return path.Join(path.Base(folder), name), nil
}

func (s *UploadService) allowedExt(contentType string, kind UploadKind) (string, error) {
	ext, known := extByContentType[contentType]
	if known && contentType == "application/pdf" && kind == UploadImage {
		known = false
	}
	if !known {
		if kind == UploadImage {
			return "", &UploadError{
				Kind:    UploadInvalidType,
				Message: "Invalid image type. Only jpg, jpeg and png files are allowed.",
			}
		}
		return "", &UploadError{
			Kind:    UploadInvalidType,
			Message: "Invalid file type. Only jpg, jpeg, png and pdf files are allowed.",
		}
	}
	return ext, nil
}

// Remove deletes a previously stored upload, refusing paths that escape the
// uploads directory. Used to compensate when a row insert fails after the
// file was written.
func (s *UploadService) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	folder := config.GetUploadFolder()
	cleaned := path.Clean(relPath)
	if strings.Contains(cleaned, "..") || !strings.HasPrefix(cleaned, path.Base(folder)+"/") {
		return common.NewError("refusing to remove path outside uploads dir:", relPath)
	}
	full := filepath.Join(filepath.Dir(folder), filepath.FromSlash(cleaned))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
