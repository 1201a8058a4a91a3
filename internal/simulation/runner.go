package simulation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nvandessel/contagion/internal/epidemic"
	"github.com/nvandessel/contagion/internal/network"
	"github.com/nvandessel/contagion/internal/report"
	"gonum.org/v1/gonum/graph/simple"
)

// Runner orchestrates multi-seed simulation experiments against the real
// stepper.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner bound to t.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario once per seed and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	// Phase 1: Build the network and initial population.
	adj := r.buildNetwork(scenario)
	initial := r.initialPopulation(scenario)

	seeds := scenario.Seeds
	if len(seeds) == 0 {
		seeds = []uint64{1}
	}

	// Phase 2: Run every seed to completion.
	runs := make([]RunResult, 0, len(seeds))
	for _, seed := range seeds {
		runs = append(runs, r.runSeed(scenario, adj, initial, seed))
	}

	return SimulationResult{
		Scenario: scenario,
		Network:  adj,
		Runs:     runs,
	}
}

// buildNetwork turns the scenario's edges into an Adjacency via a gonum graph.
func (r *Runner) buildNetwork(scenario Scenario) *network.Adjacency {
	r.t.Helper()

	g := simple.NewUndirectedGraph()
	for i := 0; i < scenario.Agents; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range scenario.Edges {
		if e.A == e.B {
			r.t.Fatalf("%s: self-contact on agent %d", scenario.Name, e.A)
		}
		g.SetEdge(simple.Edge{F: simple.Node(e.A), T: simple.Node(e.B)})
	}

	adj, err := network.FromGraph(g, scenario.Agents)
	if err != nil {
		r.t.Fatalf("%s: build network: %v", scenario.Name, err)
	}
	return adj
}

func (r *Runner) initialPopulation(scenario Scenario) epidemic.Population {
	r.t.Helper()

	initial := make(epidemic.Population, scenario.Agents)
	for _, i := range scenario.Infected {
		if i < 0 || i >= scenario.Agents {
			r.t.Fatalf("%s: infected agent %d outside [0, %d)", scenario.Name, i, scenario.Agents)
		}
		initial[i] = epidemic.Infectious
	}
	return initial
}

// runSeed executes a single seed and returns its result.
func (r *Runner) runSeed(scenario Scenario, adj *network.Adjacency, initial epidemic.Population, seed uint64) RunResult {
	r.t.Helper()

	s, err := epidemic.NewStepper(initial, adj, scenario.Params, NewRand(seed))
	if err != nil {
		r.t.Fatalf("%s seed %d: NewStepper: %v", scenario.Name, seed, err)
	}
	if scenario.BeforeRun != nil {
		scenario.BeforeRun(seed, s)
	}

	for s.Step() {
		if scenario.OnDay != nil {
			scenario.OnDay(seed, s)
		}
	}

	res := s.Result()
	return RunResult{
		Seed:    seed,
		Result:  res,
		Summary: report.Summarize(res, adj),
	}
}

// FormatRunDebug returns a debug string for a run: one line per day with the
// infectious agents and that day's detections.
func FormatRunDebug(rr RunResult) string {
	var b strings.Builder
	res := rr.Result
	fmt.Fprintf(&b, "Seed %d: days=%d random=%v friend=%v\n", rr.Seed, res.DaysRun(), res.RandomGroup.Members(), res.FriendGroup.Members())
	for d, p := range res.Days() {
		fmt.Fprintf(&b, "  day %d: infectious=%v", d, p.Infectious())
		if d < res.DaysRun() {
			fmt.Fprintf(&b, " detections=%d/%d", res.RandomDetections[d], res.FriendDetections[d])
		}
		b.WriteString("\n")
	}
	return b.String()
}
