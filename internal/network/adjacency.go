// Package network holds the read-only contact network a simulation runs on.
// The network is an N×N 0/1 adjacency matrix backed by gonum, with contact
// lists precomputed per agent.
package network

import (
	"errors"
	"fmt"

	"github.com/nvandessel/contagion/internal/constants"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned when a network has no agents.
	ErrEmpty = errors.New("network has no agents")

	// ErrNotSquare is returned when the adjacency rows do not form an N×N matrix.
	ErrNotSquare = errors.New("adjacency matrix is not square")

	// ErrInvalidEntry is returned for matrix entries outside {0, 1} and for
	// graph nodes whose IDs fall outside [0, N).
	ErrInvalidEntry = errors.New("invalid adjacency entry")

	// ErrTooLarge is returned when a network exceeds constants.MaxAgents.
	ErrTooLarge = errors.New("network too large")
)

// Adjacency is an immutable N×N contact matrix. Entry (i, j) == 1 means
// agents i and j are in contact.
type Adjacency struct {
	m        *mat.Dense
	contacts [][]int
}

// NewAdjacency builds an Adjacency from rows of 0/1 values.
func NewAdjacency(rows [][]int) (*Adjacency, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}

	m := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSquare, i, len(row), n)
		}
		for j, v := range row {
			switch v {
			case 0:
			case 1:
				m.Set(i, j, 1)
			default:
				return nil, fmt.Errorf("%w: (%d, %d) = %d", ErrInvalidEntry, i, j, v)
			}
		}
	}
	return fromDense(m), nil
}

// FromGraph builds an Adjacency over agents 0..n-1 from an undirected gonum
// graph. Node IDs must lie in [0, n).
func FromGraph(g graph.Undirected, n int) (*Adjacency, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	if n > constants.MaxAgents {
		return nil, fmt.Errorf("%w: %d agents, limit %d", ErrTooLarge, n, constants.MaxAgents)
	}

	m := mat.NewDense(n, n, nil)
	nodes := g.Nodes()
	for nodes.Next() {
		u := nodes.Node().ID()
		if u < 0 || u >= int64(n) {
			return nil, fmt.Errorf("%w: node %d outside [0, %d)", ErrInvalidEntry, u, n)
		}
		to := g.From(u)
		for to.Next() {
			v := to.Node().ID()
			if v < 0 || v >= int64(n) {
				return nil, fmt.Errorf("%w: node %d outside [0, %d)", ErrInvalidEntry, v, n)
			}
			m.Set(int(u), int(v), 1)
			m.Set(int(v), int(u), 1)
		}
	}
	return fromDense(m), nil
}

func fromDense(m *mat.Dense) *Adjacency {
	n, _ := m.Dims()
	contacts := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.At(i, j) == 1 {
				contacts[i] = append(contacts[i], j)
			}
		}
	}
	return &Adjacency{m: m, contacts: contacts}
}

// N returns the number of agents.
func (a *Adjacency) N() int {
	n, _ := a.m.Dims()
	return n
}

// Connected reports whether agents i and j are in contact.
func (a *Adjacency) Connected(i, j int) bool {
	return a.m.At(i, j) == 1
}

// Contacts returns the agents in contact with i, in ascending index order.
// The returned slice must not be modified.
func (a *Adjacency) Contacts(i int) []int {
	return a.contacts[i]
}

// Degree returns the number of contacts of agent i.
func (a *Adjacency) Degree(i int) int {
	return len(a.contacts[i])
}

// IsSymmetric reports whether every contact is mutual.
func (a *Adjacency) IsSymmetric() bool {
	return mat.Equal(a.m, a.m.T())
}

// Matrix returns a read-only view of the underlying matrix.
func (a *Adjacency) Matrix() mat.Matrix {
	return a.m
}

// Graph returns the network as an undirected gonum graph. Self-contacts on the
// diagonal are omitted since simple graphs cannot hold them.
func (a *Adjacency) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	n := a.N()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for _, j := range a.contacts[i] {
			if j == i || g.HasEdgeBetween(int64(i), int64(j)) {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}
	return g
}
