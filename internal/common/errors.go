// Package common defines shared constants and sentinel errors used across
// the Inkwell server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration: username or email already taken.
	ErrorConflict = errors.New("already exists")

	// Login: unknown email and wrong password collapse to this single value
	// so responses cannot be used to enumerate accounts.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Mutation of a resource owned by somebody else.
	ErrorForbidden = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
