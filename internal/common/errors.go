// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is / errors.As to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration errors.
	ErrConflict = errors.New("username or email already exists")

	// Login errors. The message is shared by the unknown-user and the
	// wrong-password paths.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Access gate errors.
	ErrMissingCredential = errors.New("authorization token required")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("malformed token")

	// Authorization errors.
	ErrForbidden = errors.New("forbidden")

	// Throttling errors.
	ErrRateLimited = errors.New("too many attempts")
)
