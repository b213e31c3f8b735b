// Package errs defines the error kinds shared across services. Callers
// classify failures with errors.Is; everything that does not match a
// sentinel is treated as internal.
package errs

import "errors"

var (
	// ErrNotFound signals that a referenced member, plan or membership
	// does not exist, or that a membership is owned by another member.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a caller-supplied id collision.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument signals a value outside a closed enum set.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorageUnavailable signals a blob-storage failure during a
	// document upload. Kept distinct so callers can retry or degrade.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
