package epidemic

import "fmt"

// State is the disease state of a single agent on a given day.
type State uint8

const (
	// Susceptible agents can catch the infection unless they are immune.
	Susceptible State = 0
	// Infectious agents transmit to their non-immune, non-infectious contacts.
	Infectious State = 1
)

func (s State) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infectious:
		return "infectious"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s == Susceptible || s == Infectious
}

// Population is one snapshot of agent states, indexed by agent.
type Population []State

// PopulationFromInts converts a 0/1 vector into a Population.
func PopulationFromInts(values []int) (Population, error) {
	pop := make(Population, len(values))
	for i, v := range values {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: agent %d has state %d", ErrInvalidConfiguration, i, v)
		}
		pop[i] = State(v)
	}
	return pop, nil
}

// Ints returns the snapshot as a 0/1 vector.
func (p Population) Ints() []int {
	out := make([]int, len(p))
	for i, s := range p {
		out[i] = int(s)
	}
	return out
}

// Infectious returns the indices of infectious agents in ascending order.
func (p Population) Infectious() []int {
	var idx []int
	for i, s := range p {
		if s == Infectious {
			idx = append(idx, i)
		}
	}
	return idx
}

// CountInfectious returns the number of infectious agents.
func (p Population) CountInfectious() int {
	n := 0
	for _, s := range p {
		if s == Infectious {
			n++
		}
	}
	return n
}

// Tracked records the day an agent entered a tracked condition (onset of
// infection, or start of immunity). The zero value is NotTracked.
type Tracked struct {
	day    int
	active bool
}

// NotTracked is the absence of a tracked condition.
var NotTracked = Tracked{}

// Since returns a Tracked entry that began on day.
func Since(day int) Tracked {
	return Tracked{day: day, active: true}
}

// Day returns the day the condition began and whether it is active.
func (t Tracked) Day() (int, bool) {
	return t.day, t.active
}

// Active reports whether the condition is being tracked.
func (t Tracked) Active() bool {
	return t.active
}

func (t Tracked) String() string {
	if !t.active {
		return "none"
	}
	return fmt.Sprintf("since day %d", t.day)
}
