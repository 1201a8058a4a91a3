package epidemic

import (
	"math/rand/v2"
	"testing"

	"github.com/nvandessel/contagion/internal/network"
)

// scriptedRand replays fixed draws. Perm returns perm when set and the
// identity otherwise; IntN pops ints (mod n) and returns 0 once exhausted.
type scriptedRand struct {
	perm []int
	ints []int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Perm(n int) []int {
	if r.perm != nil {
		return append([]int(nil), r.perm...)
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// seeded returns a deterministic PCG-backed source.
func seeded(seed uint64) *rand.Rand {
	return NewRand(seed)
}

// adjacencyFromEdges builds a symmetric n-agent network.
func adjacencyFromEdges(t *testing.T, n int, edges [][2]int) *network.Adjacency {
	t.Helper()
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
	}
	for _, e := range edges {
		rows[e[0]][e[1]] = 1
		rows[e[1]][e[0]] = 1
	}
	adj, err := network.NewAdjacency(rows)
	if err != nil {
		t.Fatalf("adjacencyFromEdges: %v", err)
	}
	return adj
}

// ring returns the n-cycle 0-1-...-(n-1)-0.
func ring(t *testing.T, n int) *network.Adjacency {
	t.Helper()
	edges := make([][2]int, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]int{i, (i + 1) % n}
	}
	return adjacencyFromEdges(t, n, edges)
}

// randomNetwork returns a ring with extra random chords, so every agent has
// at least two contacts.
func randomNetwork(t *testing.T, n, chords int, seed uint64) *network.Adjacency {
	t.Helper()
	rng := seeded(seed)
	edges := make([][2]int, 0, n+chords)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	for len(edges) < n+chords {
		u, v := rng.IntN(n), rng.IntN(n)
		if u != v {
			edges = append(edges, [2]int{u, v})
		}
	}
	return adjacencyFromEdges(t, n, edges)
}

// pop builds a Population from 0/1 values.
func pop(t *testing.T, values ...int) Population {
	t.Helper()
	p, err := PopulationFromInts(values)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	return p
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
