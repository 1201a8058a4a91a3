package network

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nvandessel/contagion/internal/constants"
	"gonum.org/v1/gonum/graph/simple"
)

// cycle4 is the 4-cycle 0-1-2-3-0.
var cycle4 = [][]int{
	{0, 1, 0, 1},
	{1, 0, 1, 0},
	{0, 1, 0, 1},
	{1, 0, 1, 0},
}

func TestNewAdjacency_Contacts(t *testing.T) {
	adj, err := NewAdjacency(cycle4)
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}

	if adj.N() != 4 {
		t.Errorf("N() = %d, want 4", adj.N())
	}

	want := [][]int{{1, 3}, {0, 2}, {1, 3}, {0, 2}}
	for i, w := range want {
		if got := adj.Contacts(i); !reflect.DeepEqual(got, w) {
			t.Errorf("Contacts(%d) = %v, want %v", i, got, w)
		}
		if adj.Degree(i) != len(w) {
			t.Errorf("Degree(%d) = %d, want %d", i, adj.Degree(i), len(w))
		}
	}

	if !adj.Connected(0, 1) || adj.Connected(0, 2) {
		t.Error("Connected() disagrees with matrix")
	}
	if !adj.IsSymmetric() {
		t.Error("4-cycle should be symmetric")
	}
}

func TestNewAdjacency_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want error
	}{
		{"empty", nil, ErrEmpty},
		{"ragged", [][]int{{0, 1}, {1}}, ErrNotSquare},
		{"wide", [][]int{{0, 1, 0}, {1, 0, 0}}, ErrNotSquare},
		{"entry 2", [][]int{{0, 2}, {2, 0}}, ErrInvalidEntry},
		{"negative entry", [][]int{{0, -1}, {1, 0}}, ErrInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdjacency(tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewAdjacency() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdjacency_Asymmetric(t *testing.T) {
	adj, err := NewAdjacency([][]int{
		{0, 1, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}
	if adj.IsSymmetric() {
		t.Error("expected asymmetric matrix")
	}
	if got := adj.Contacts(1); len(got) != 0 {
		t.Errorf("Contacts(1) = %v, want none", got)
	}

	// One-sided contacts still appear as an undirected edge.
	g := adj.Graph()
	if !g.HasEdgeBetween(0, 1) {
		t.Error("expected edge 0-1 in graph")
	}
}

func TestAdjacency_GraphRoundTrip(t *testing.T) {
	adj, err := NewAdjacency(cycle4)
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}

	g := adj.Graph()
	if g.Nodes().Len() != 4 {
		t.Errorf("graph nodes = %d, want 4", g.Nodes().Len())
	}
	if g.Edges().Len() != 4 {
		t.Errorf("graph edges = %d, want 4", g.Edges().Len())
	}

	back, err := FromGraph(g, 4)
	if err != nil {
		t.Fatalf("FromGraph: %v", err)
	}
	for i := 0; i < 4; i++ {
		if !reflect.DeepEqual(back.Contacts(i), adj.Contacts(i)) {
			t.Errorf("round trip Contacts(%d) = %v, want %v", i, back.Contacts(i), adj.Contacts(i))
		}
	}
}

func TestFromGraph_NodeOutOfRange(t *testing.T) {
	g := simple.NewUndirectedGraph()
	g.SetEdge(simple.Edge{F: simple.Node(0), T: simple.Node(5)})

	_, err := FromGraph(g, 3)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("FromGraph() error = %v, want ErrInvalidEntry", err)
	}

	if _, err := FromGraph(g, 0); !errors.Is(err, ErrEmpty) {
		t.Errorf("FromGraph(n=0) error = %v, want ErrEmpty", err)
	}
	if _, err := FromGraph(g, constants.MaxAgents+1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("FromGraph(n=MaxAgents+1) error = %v, want ErrTooLarge", err)
	}
}

func TestReadEdgeList(t *testing.T) {
	input := `# ring of four plus an isolated agent
n 5
0 1
1 2

2 3
3 0
0 1
`
	adj, err := ReadEdgeList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadEdgeList: %v", err)
	}
	if adj.N() != 5 {
		t.Fatalf("N() = %d, want 5", adj.N())
	}
	if got := adj.Contacts(0); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Contacts(0) = %v, want [1 3]", got)
	}
	if adj.Degree(4) != 0 {
		t.Errorf("Degree(4) = %d, want 0", adj.Degree(4))
	}
	if !adj.IsSymmetric() {
		t.Error("edge list networks should be symmetric")
	}
}

func TestReadEdgeList_InferredSize(t *testing.T) {
	adj, err := ReadEdgeList(strings.NewReader("0 2\n"))
	if err != nil {
		t.Fatalf("ReadEdgeList: %v", err)
	}
	if adj.N() != 3 {
		t.Errorf("N() = %d, want 3", adj.N())
	}
}

func TestReadEdgeList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"three fields", "0 1 2\n", ErrParse},
		{"non numeric", "a b\n", ErrParse},
		{"negative", "0 -1\n", ErrParse},
		{"self contact", "1 1\n", ErrParse},
		{"bad header", "n zero\n", ErrParse},
		{"exceeds header", "n 2\n0 2\n", ErrParse},
		{"index beyond agent limit", "0 3000000000\n", ErrParse},
		{"header beyond agent limit", "n 3000000000\n0 1\n", ErrParse},
		{"empty", "# nothing\n", ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdgeList(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadEdgeList() error = %v, want %v", err, tt.want)
			}
		})
	}
}
