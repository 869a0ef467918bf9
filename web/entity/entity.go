// Package entity defines data structures shared by the web layer of SecondPlan.
package entity

// Msg is the uniform API response envelope. Every endpoint, success or
// failure, answers with this shape.
type Msg struct {
	Success bool   `json:"success"`           // Indicates if the operation was successful
	Message string `json:"message,omitempty"` // Human-readable response text
	Data    any    `json:"data,omitempty"`    // Optional payload
	Id      int    `json:"id,omitempty"`      // Identifier of a newly created row
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}
