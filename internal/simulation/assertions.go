package simulation

import (
	"reflect"
	"slices"
	"testing"

	"github.com/nvandessel/contagion/internal/epidemic"
)

// AssertHistoryShape asserts that every run's history holds one snapshot per
// simulated day plus the initial one, never beyond the horizon, and that both
// detection series have one entry per simulated day.
func AssertHistoryShape(t *testing.T, result SimulationResult) {
	t.Helper()
	horizon := result.Scenario.Params.Horizon
	for _, rr := range result.Runs {
		res := rr.Result
		if len(res.History)%res.N != 0 {
			t.Errorf("AssertHistoryShape: seed %d: history length %d not a multiple of %d", rr.Seed, len(res.History), res.N)
			continue
		}
		snapshots := len(res.History) / res.N
		if snapshots-1 > horizon {
			t.Errorf("AssertHistoryShape: seed %d: %d snapshots exceed horizon %d", rr.Seed, snapshots, horizon)
		}
		if snapshots != res.DaysRun()+1 {
			t.Errorf("AssertHistoryShape: seed %d: %d snapshots for %d days", rr.Seed, snapshots, res.DaysRun())
		}
		if len(res.FriendDetections) != len(res.RandomDetections) {
			t.Errorf("AssertHistoryShape: seed %d: series lengths %d/%d differ", rr.Seed, len(res.RandomDetections), len(res.FriendDetections))
		}
	}
}

// AssertExtinctionStops asserts that no run continues past an all-susceptible
// day, and that runs ending before the horizon ended extinct.
func AssertExtinctionStops(t *testing.T, result SimulationResult) {
	t.Helper()
	horizon := result.Scenario.Params.Horizon
	for _, rr := range result.Runs {
		days := rr.Result.Days()
		for d := 0; d < len(days)-1; d++ {
			if days[d].CountInfectious() == 0 {
				t.Errorf("AssertExtinctionStops: seed %d: day %d extinct but run continued to day %d", rr.Seed, d, len(days)-1)
				break
			}
		}
		if rr.Result.DaysRun() < horizon && !rr.Result.Extinct() {
			t.Errorf("AssertExtinctionStops: seed %d: stopped at day %d before horizon %d while infectious", rr.Seed, rr.Result.DaysRun(), horizon)
		}
	}
}

// AssertDetectionBounds asserts that no day's detection count exceeds the
// number of distinct agents in the corresponding test group.
func AssertDetectionBounds(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, rr := range result.Runs {
		res := rr.Result
		for d := range res.RandomDetections {
			if res.RandomDetections[d] > res.RandomGroup.Distinct() {
				t.Errorf("AssertDetectionBounds: seed %d day %d: random detections %d > group %d", rr.Seed, d, res.RandomDetections[d], res.RandomGroup.Distinct())
			}
			if res.FriendDetections[d] > res.FriendGroup.Distinct() {
				t.Errorf("AssertDetectionBounds: seed %d day %d: friend detections %d > group %d", rr.Seed, d, res.FriendDetections[d], res.FriendGroup.Distinct())
			}
		}
	}
}

// AssertFriendGroupSize asserts that each friend group has one entry per
// contact of each random group member.
func AssertFriendGroupSize(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, rr := range result.Runs {
		want := 0
		for _, m := range rr.Result.RandomGroup.Members() {
			want += result.Network.Degree(m)
		}
		if got := rr.Result.FriendGroup.Len(); got != want {
			t.Errorf("AssertFriendGroupSize: seed %d: friend group has %d entries, want summed degree %d", rr.Seed, got, want)
		}
	}
}

// AssertOnlyInitialInfected asserts that no agent outside the scenario's
// initially infected set is ever infectious.
func AssertOnlyInitialInfected(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, rr := range result.Runs {
		for d, p := range rr.Result.Days() {
			for _, i := range p.Infectious() {
				if !slices.Contains(result.Scenario.Infected, i) {
					t.Errorf("AssertOnlyInitialInfected: seed %d day %d: agent %d infectious", rr.Seed, d, i)
				}
			}
		}
	}
}

// AssertAttackRateAtLeast asserts that at least minFraction of runs infected
// at least minAttack of the population at some point.
func AssertAttackRateAtLeast(t *testing.T, result SimulationResult, minAttack, minFraction float64) {
	t.Helper()
	if len(result.Runs) == 0 {
		t.Fatal("AssertAttackRateAtLeast: no runs")
	}
	count := 0
	for _, rr := range result.Runs {
		if rr.Summary.AttackRate >= minAttack {
			count++
		}
	}
	fraction := float64(count) / float64(len(result.Runs))
	if fraction < minFraction {
		t.Errorf("AssertAttackRateAtLeast: %.1f%% of runs reached attack rate %.2f (need %.1f%%)", fraction*100, minAttack, minFraction*100)
	}
}

// AssertReproducible asserts that two results of the same scenario and seeds
// are identical run for run.
func AssertReproducible(t *testing.T, a, b SimulationResult) {
	t.Helper()
	if len(a.Runs) != len(b.Runs) {
		t.Fatalf("AssertReproducible: %d runs vs %d", len(a.Runs), len(b.Runs))
	}
	for i := range a.Runs {
		ra, rb := a.Runs[i].Result, b.Runs[i].Result
		if !reflect.DeepEqual(ra.History, rb.History) ||
			!reflect.DeepEqual(ra.RandomDetections, rb.RandomDetections) ||
			!reflect.DeepEqual(ra.FriendDetections, rb.FriendDetections) {
			t.Errorf("AssertReproducible: seed %d differs between runs", a.Runs[i].Seed)
		}
	}
}

// AssertNotInfectiousAndImmune is an OnDay hook body: it fails if any agent
// in the stepper's current snapshot is infectious while tracked as immune, or
// is tracked as both infected and immune.
func AssertNotInfectiousAndImmune(t *testing.T, seed uint64, s *epidemic.Stepper) {
	t.Helper()
	cur := s.Current()
	for i := range cur {
		immune := s.Immunity(i).Active()
		if immune && (cur[i] == epidemic.Infectious || s.Onset(i).Active()) {
			t.Fatalf("AssertNotInfectiousAndImmune: seed %d day %d: agent %d is infectious/infected and immune", seed, s.Day(), i)
		}
	}
}
