package usecase

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrAlreadyExists   = errors.New("already exists")
	ErrBookUnavailable = errors.New("book is not available")
	ErrAlreadyReturned = errors.New("record already returned")
	ErrInvalidRole     = errors.New("invalid role")

	// ErrTxConflict is returned by repositories when a write lost a race
	// with a concurrent transaction. Callers may retry; every other error
	// in this package is a business-rule outcome and must not be retried.
	ErrTxConflict = errors.New("transaction conflict")

	// ErrUnavailable is surfaced after a bounded retry on ErrTxConflict
	// still failed.
	ErrUnavailable = errors.New("storage unavailable")
)
