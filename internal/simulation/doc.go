// Package simulation provides a multi-seed test harness for validating the
// emergent dynamics of the epidemic stepper.
//
// The harness exercises the real Stepper, network loader and report summary
// with no mocks. Scenarios are Go builders that describe a contact network,
// the initially infectious agents and the run parameters; the Runner executes
// the scenario once per seed and captures each result and its summary for
// property-based assertions.
//
// Each seed gets its own PCG source, so a failing seed can be replayed in
// isolation.
//
// Usage:
//
//	func TestRingExtinction(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:     "ring",
//	        Agents:   20,
//	        Edges:    simulation.RingEdges(20),
//	        Infected: []int{0},
//	        Params:   epidemic.Params{...},
//	        Seeds:    simulation.SeedRange(1, 50),
//	    })
//	    simulation.AssertHistoryShape(t, result)
//	}
package simulation
