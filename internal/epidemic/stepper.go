// Package epidemic advances infection, recovery and waning immunity over a
// contact network one day at a time, and records when a random test group
// and a contact-sampled ("friend") test group first see new infections.
//
// Each day is computed from a frozen copy of the previous snapshot. Given the
// same Rand stream and inputs, a run is bit-for-bit reproducible.
package epidemic

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nvandessel/contagion/internal/constants"
	"github.com/nvandessel/contagion/internal/logging"
	"github.com/nvandessel/contagion/internal/network"
)

// Stepper owns the state of a single run.
type Stepper struct {
	adj    *network.Adjacency
	params Params
	rng    Rand
	n      int

	day     int
	done    bool
	history Population
	onset   []Tracked
	immune  []Tracked

	randomGroup *Group
	friendGroup *Group

	randomDetections []int
	friendDetections []int

	logger    *slog.Logger
	decisions *logging.DecisionLogger
}

// NewStepper validates the inputs and samples both test groups. No day is
// simulated until Step or Run is called.
func NewStepper(initial Population, adj *network.Adjacency, params Params, rng Rand) (*Stepper, error) {
	n := len(initial)
	if n == 0 {
		return nil, fmt.Errorf("%w: population is empty", ErrInvalidConfiguration)
	}
	for i, s := range initial {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: agent %d has state %d", ErrInvalidConfiguration, i, s)
		}
	}
	if adj == nil {
		return nil, fmt.Errorf("%w: no adjacency matrix", ErrDimensionMismatch)
	}
	if adj.N() != n {
		return nil, fmt.Errorf("%w: adjacency is %dx%d, population has %d agents", ErrDimensionMismatch, adj.N(), adj.N(), n)
	}
	if err := params.Validate(n); err != nil {
		return nil, err
	}

	randomGroup, err := RandomTestGroup(n, params.TestGroupSize, rng)
	if err != nil {
		return nil, err
	}
	friendGroup, err := FriendTestGroup(adj, randomGroup, rng)
	if err != nil {
		return nil, err
	}

	// Most runs die out long before the horizon; append grows the rest.
	history := make(Population, n, n*(min(params.Horizon, constants.HistoryPreallocDays)+1))
	copy(history, initial)

	return &Stepper{
		adj:         adj,
		params:      params,
		rng:         rng,
		n:           n,
		history:     history,
		onset:       make([]Tracked, n),
		immune:      make([]Tracked, n),
		randomGroup: randomGroup,
		friendGroup: friendGroup,
	}, nil
}

// SetLogger sets the structured logger and decision logger for observability.
func (s *Stepper) SetLogger(logger *slog.Logger, decisions *logging.DecisionLogger) {
	s.logger = logger
	s.decisions = decisions
}

// Day returns the day of the latest snapshot.
func (s *Stepper) Day() int {
	return s.day
}

// Done reports whether the run has ended, by extinction or by reaching the
// horizon.
func (s *Stepper) Done() bool {
	return s.done
}

// Current returns a copy of the latest snapshot.
func (s *Stepper) Current() Population {
	return slices.Clone(s.snapshot(s.day))
}

// Onset returns agent i's infection onset entry.
func (s *Stepper) Onset(i int) Tracked {
	return s.onset[i]
}

// Immunity returns agent i's immunity entry.
func (s *Stepper) Immunity(i int) Tracked {
	return s.immune[i]
}

func (s *Stepper) snapshot(day int) Population {
	return s.history[day*s.n : (day+1)*s.n]
}

// dayStats summarises one simulated day for logging.
type dayStats struct {
	infectious    int
	immune        int
	newlyInfected int
	recovered     int
	immunityLost  int
	randomCount   int
	friendCount   int
}

// Step simulates a single day. It returns false, without appending anything,
// once the horizon is reached or no agent is infectious.
func (s *Stepper) Step() bool {
	if s.done {
		return false
	}
	if s.day >= s.params.Horizon {
		s.done = true
		return false
	}

	t := s.day
	current := s.snapshot(t)
	infectious := current.Infectious()
	if len(infectious) == 0 {
		s.done = true
		if s.logger != nil {
			s.logger.Debug("epidemic extinct", "day", t)
		}
		return false
	}

	// Immunity is read from the start of the day; agents recovering during
	// this pass are infectious in current and excluded through that instead.
	immuneNow := make([]bool, s.n)
	var immune []int
	for i, entry := range s.immune {
		if entry.Active() {
			immuneNow[i] = true
			immune = append(immune, i)
		}
	}

	next := slices.Clone(current)
	stats := dayStats{infectious: len(infectious), immune: len(immune)}

	for _, i := range infectious {
		if !s.onset[i].Active() {
			s.onset[i] = Since(t)
			if s.randomGroup.Contains(i) {
				stats.randomCount++
			} else if s.friendGroup.Contains(i) {
				stats.friendCount++
			}
		}

		// Later infectious neighbours overwrite earlier outcomes for the
		// same contact.
		for _, c := range s.adj.Contacts(i) {
			if immuneNow[c] || current[c] == Infectious {
				continue
			}
			draw := s.rng.IntN(constants.DrawResolution) + 1
			if s.params.TransmissionProbability >= float64(draw)/constants.DrawResolution {
				next[c] = Infectious
			} else {
				next[c] = Susceptible
			}
			if s.logger != nil {
				s.logger.Log(context.Background(), logging.LevelTrace, "transmission attempt",
					"day", t, "source", i, "contact", c, "draw", draw, "infected", next[c] == Infectious)
			}
		}

		if t >= s.params.InfectiousDuration {
			if since, ok := s.onset[i].Day(); ok && t-since == s.params.InfectiousDuration {
				next[i] = Susceptible
				s.onset[i] = NotTracked
				s.immune[i] = Since(t)
				stats.recovered++
			}
		}
	}

	if t >= s.params.ImmunityDuration {
		for _, r := range immune {
			if since, ok := s.immune[r].Day(); ok && t-since == s.params.ImmunityDuration {
				s.immune[r] = NotTracked
				stats.immunityLost++
			}
		}
	}

	for i := range next {
		if current[i] == Susceptible && next[i] == Infectious {
			stats.newlyInfected++
		}
	}

	s.history = append(s.history, next...)
	s.randomDetections = append(s.randomDetections, stats.randomCount)
	s.friendDetections = append(s.friendDetections, stats.friendCount)
	s.day++

	s.logDay(t, stats)
	return true
}

func (s *Stepper) logDay(t int, stats dayStats) {
	if s.logger != nil {
		s.logger.Debug("day simulated",
			"day", t,
			"infectious", stats.infectious,
			"newly_infected", stats.newlyInfected,
			"recovered", stats.recovered,
			"immunity_lost", stats.immunityLost)
	}
	if s.decisions != nil {
		s.decisions.Log(map[string]any{
			"event":             "day_simulated",
			"day":               t,
			"infectious":        stats.infectious,
			"immune":            stats.immune,
			"newly_infected":    stats.newlyInfected,
			"recovered":         stats.recovered,
			"immunity_lost":     stats.immunityLost,
			"random_detections": stats.randomCount,
			"friend_detections": stats.friendCount,
		})
	}
}

// Run steps until the run is done and returns its result. The context is
// checked between days; a cancelled run returns no result.
func (s *Stepper) Run(ctx context.Context) (*Result, error) {
	for !s.done {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation cancelled on day %d: %w", s.day, err)
		}
		s.Step()
	}

	if s.logger != nil {
		s.logger.Info("simulation finished",
			"agents", s.n,
			"days_run", s.day,
			"random_group", s.randomGroup.Len(),
			"friend_group", s.friendGroup.Len())
	}
	return s.Result(), nil
}

// Result returns the run's output so far.
func (s *Stepper) Result() *Result {
	return &Result{
		N:                s.n,
		History:          slices.Clone(s.history),
		RandomDetections: slices.Clone(s.randomDetections),
		FriendDetections: slices.Clone(s.friendDetections),
		RandomGroup:      s.randomGroup,
		FriendGroup:      s.friendGroup,
	}
}

// Simulate runs a full simulation from the initial population.
func Simulate(ctx context.Context, initial Population, adj *network.Adjacency, params Params, rng Rand) (*Result, error) {
	s, err := NewStepper(initial, adj, params, rng)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}
