package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes forming the client-visible taxonomy. Handlers translate every
// failure into one of these before it crosses the boundary.
const (
	CodeValidation   = "validation_error"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeServerError  = "server_error"
)

// APIError is a client-facing error with an HTTP status, a stable machine
// code, and a human-readable message. It implements the error interface and
// can be written straight to a response.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// NewAPIError builds an APIError with a custom message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

var (
	// ErrUnauthorized is returned when no valid session resolves.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		Message:    "Unauthorized",
	}

	// ErrForbidden is returned when a session resolves but the identity is not
	// entitled to the resource.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeForbidden,
		Message:    "Forbidden",
	}

	// ErrNotFound is returned for missing resource ids.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    "Not found",
	}

	// ErrServerError is the only thing a caller sees for unclassified
	// failures; detail stays in the server log.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		Message:    "Internal server error",
	}
)
