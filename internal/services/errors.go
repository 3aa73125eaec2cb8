package services

import "errors"

// Domain errors. Handlers translate these to HTTP statuses; everything else
// is treated as an internal error and logged server-side.
var (
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)
