package model

import "errors"

// Common errors used across the application. All auth failures are
// user-correctable: they surface as inline form messages or 4xx responses
// and are never fatal.
var (
	// Validation errors (malformed signup input)
	ErrMissingCredentials = errors.New("missing credentials")
	ErrSecretTooShort     = errors.New("secret too short")
	ErrSecretMismatch     = errors.New("mismatch")

	// Conflict errors
	ErrAccountExists = errors.New("account exists")

	// Not-found errors
	ErrAccountNotFound = errors.New("no account")

	// Invalid-credential errors
	ErrWrongSecret = errors.New("wrong secret")

	// Session errors
	ErrSessionNotFound = errors.New("no session")

	// Storage errors
	ErrMalformedRecord = errors.New("malformed record")
)

// IsValidation reports whether err is one of the signup input validation
// failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrSecretTooShort) ||
		errors.Is(err, ErrSecretMismatch)
}

// IsAuthFailure reports whether err is any of the user-correctable auth
// errors, as opposed to a storage or infrastructure failure.
func IsAuthFailure(err error) bool {
	return IsValidation(err) ||
		errors.Is(err, ErrAccountExists) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWrongSecret)
}
