package store

import "errors"

// Caller-facing failure classes. The HTTP layer maps these with errors.Is:
// ErrNotFound to 404, the rest to 400. Anything else is a 500.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrSeatConflict      = errors.New("seat already booked")
)
