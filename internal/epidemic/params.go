package epidemic

import (
	"fmt"
	"math"
)

// Params holds the scalar parameters of a run.
type Params struct {
	// TransmissionProbability is the chance, per day and per infectious
	// neighbour, that a susceptible contact becomes infectious. Range [0, 1].
	TransmissionProbability float64

	// Horizon is the last day the simulation may reach.
	Horizon int

	// InfectiousDuration is the number of days an agent stays infectious.
	InfectiousDuration int

	// ImmunityDuration is the number of days a recovered agent stays immune.
	ImmunityDuration int

	// TestGroupSize is the number of agents in the random test group.
	// Must satisfy 1 <= TestGroupSize < N.
	TestGroupSize int
}

// Validate checks the parameters against a population of n agents.
func (p Params) Validate(n int) error {
	if math.IsNaN(p.TransmissionProbability) || p.TransmissionProbability < 0 || p.TransmissionProbability > 1 {
		return fmt.Errorf("%w: transmission probability must be between 0 and 1, got %v", ErrInvalidConfiguration, p.TransmissionProbability)
	}
	if p.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be non-negative, got %d", ErrInvalidConfiguration, p.Horizon)
	}
	if p.InfectiousDuration < 0 {
		return fmt.Errorf("%w: infectious duration must be non-negative, got %d", ErrInvalidConfiguration, p.InfectiousDuration)
	}
	if p.ImmunityDuration < 0 {
		return fmt.Errorf("%w: immunity duration must be non-negative, got %d", ErrInvalidConfiguration, p.ImmunityDuration)
	}
	return validateGroupSize(n, p.TestGroupSize)
}

func validateGroupSize(n, size int) error {
	if size < 1 || size >= n {
		return fmt.Errorf("%w: test group size must be in [1, %d), got %d", ErrInvalidConfiguration, n, size)
	}
	return nil
}
