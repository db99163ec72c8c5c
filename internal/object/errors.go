package object

import "errors"

// Errors returned by the simulation core. All of them are recoverable:
// the failing call leaves state untouched.
var (
	// ErrOutOfRange is returned for a lane index outside the lane grid.
	ErrOutOfRange = errors.New("lane index out of range")
	// ErrNotFound is returned when an egg ID is not (or no longer) active.
	ErrNotFound = errors.New("egg not found")
	// ErrInvalidConfiguration is returned when a playfield cannot be built.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
