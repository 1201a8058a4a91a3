package epidemic

import (
	"fmt"
	"slices"
)

// Result is the output of a run.
type Result struct {
	// N is the number of agents.
	N int

	// History is the concatenation of one snapshot per simulated day plus
	// the initial snapshot.
	History Population

	// RandomDetections and FriendDetections hold, per simulated day, the
	// number of test group members seen infectious for the first time.
	RandomDetections []int
	FriendDetections []int

	RandomGroup *Group
	FriendGroup *Group
}

// DaysRun returns the number of days actually simulated.
func (r *Result) DaysRun() int {
	return len(r.RandomDetections)
}

// Snapshot returns a copy of the population on the given day, 0 being the
// initial state.
func (r *Result) Snapshot(day int) (Population, error) {
	if day < 0 || day > r.DaysRun() {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrDayOutOfRange, day, r.DaysRun())
	}
	return slices.Clone(r.History[day*r.N : (day+1)*r.N]), nil
}

// Days splits the history into per-day snapshots. The snapshots are copies;
// editing one leaves History untouched.
func (r *Result) Days() []Population {
	days := make([]Population, 0, r.DaysRun()+1)
	for d := 0; d <= r.DaysRun(); d++ {
		days = append(days, slices.Clone(r.History[d*r.N:(d+1)*r.N]))
	}
	return days
}

// Final returns a copy of the last snapshot.
func (r *Result) Final() Population {
	d := r.DaysRun()
	return slices.Clone(r.History[d*r.N : (d+1)*r.N])
}

// Prevalence returns the number of infectious agents in each snapshot.
func (r *Result) Prevalence() []int {
	days := r.Days()
	out := make([]int, len(days))
	for i, p := range days {
		out[i] = p.CountInfectious()
	}
	return out
}

// Extinct reports whether the run ended with no infectious agent.
func (r *Result) Extinct() bool {
	return r.Final().CountInfectious() == 0
}
