package simulation

import (
	"math/rand/v2"

	"github.com/nvandessel/contagion/internal/epidemic"
)

// RingEdges returns the n-cycle 0-1-...-(n-1)-0.
func RingEdges(n int) []EdgeSpec {
	edges := make([]EdgeSpec, n)
	for i := range edges {
		edges[i] = EdgeSpec{A: i, B: (i + 1) % n}
	}
	return edges
}

// StarEdges returns a star with hub 0 and leaves 1..n-1.
func StarEdges(n int) []EdgeSpec {
	edges := make([]EdgeSpec, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, EdgeSpec{A: 0, B: i})
	}
	return edges
}

// CompleteEdges returns every pair among n agents.
func CompleteEdges(n int) []EdgeSpec {
	var edges []EdgeSpec
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, EdgeSpec{A: i, B: j})
		}
	}
	return edges
}

// RingWithChords returns a ring plus extra random chords drawn from seed, so
// every agent has at least two contacts.
func RingWithChords(n, chords int, seed uint64) []EdgeSpec {
	rng := NewRand(seed)
	edges := RingEdges(n)
	for added := 0; added < chords; {
		a, b := rng.IntN(n), rng.IntN(n)
		if a == b {
			continue
		}
		edges = append(edges, EdgeSpec{A: a, B: b})
		added++
	}
	return edges
}

// SeedRange returns seeds from..to inclusive.
func SeedRange(from, to uint64) []uint64 {
	seeds := make([]uint64, 0, to-from+1)
	for s := from; s <= to; s++ {
		seeds = append(seeds, s)
	}
	return seeds
}

// NewRand returns the PCG source used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return epidemic.NewRand(seed)
}
