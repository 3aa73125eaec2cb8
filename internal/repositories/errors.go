package repositories

import "errors"

// Sentinel errors shared by all repository implementations so the service
// layer can distinguish outcomes without matching error strings.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
