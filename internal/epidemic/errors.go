package epidemic

import "errors"

var (
	// ErrInvalidConfiguration is returned for out-of-range parameters or
	// initial states, before any day is simulated.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch is returned when the adjacency matrix does not
	// match the population size.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyContactList is returned when a random test group member has no
	// contacts to sample a friend from.
	ErrEmptyContactList = errors.New("empty contact list")

	// ErrDayOutOfRange is returned when a snapshot is requested for a day
	// that was not simulated.
	ErrDayOutOfRange = errors.New("day out of range")
)
