package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tickergate/tickergate/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeAccountExists      = "ACCOUNT_EXISTS"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeWrongPassword      = "WRONG_PASSWORD"
	CodeNoSession          = "NO_SESSION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingCredentials, "Email and password are required"}}
	case errors.Is(err, model.ErrSecretTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "Password must be at least 6 characters"}}
	case errors.Is(err, model.ErrSecretMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordMismatch, "Passwords do not match"}}
	case errors.Is(err, model.ErrAccountExists):
		return &httpError{http.StatusConflict, APIError{CodeAccountExists, "Account already exists"}}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "No account found for this email"}}
	case errors.Is(err, model.ErrWrongSecret):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPassword, "Incorrect password"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeNoSession, "No active session"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
