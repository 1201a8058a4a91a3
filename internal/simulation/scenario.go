package simulation

import (
	"github.com/nvandessel/contagion/internal/epidemic"
	"github.com/nvandessel/contagion/internal/network"
	"github.com/nvandessel/contagion/internal/report"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name     string
	Agents   int
	Edges    []EdgeSpec
	Infected []int
	Params   epidemic.Params
	Seeds    []uint64

	// BeforeRun, when non-nil, is called with each fresh stepper before it
	// runs. Use this to attach loggers or to step manually.
	BeforeRun func(seed uint64, s *epidemic.Stepper)

	// OnDay, when non-nil, is called after every simulated day with the
	// stepper in its post-day state.
	OnDay func(seed uint64, s *epidemic.Stepper)
}

// EdgeSpec is an undirected contact between two agents.
type EdgeSpec struct {
	A, B int
}

// RunResult captures the outcome of one seed.
type RunResult struct {
	Seed    uint64
	Result  *epidemic.Result
	Summary report.Summary
}

// SimulationResult captures all runs of a scenario.
type SimulationResult struct {
	Scenario Scenario
	Network  *network.Adjacency
	Runs     []RunResult
}
