package repositories

import "errors"

// Store-level sentinel errors. Implementations wrap these with context so
// callers can branch with errors.Is while keeping a readable message.
var (
	// ErrNotFound signals that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals that a compare-and-swap write lost the race and
	// must be retried by the caller with fresh data.
	ErrConflict = errors.New("version conflict")
	// ErrDuplicate signals a uniqueness violation (e.g. wishlist pair).
	ErrDuplicate = errors.New("duplicate record")
)
