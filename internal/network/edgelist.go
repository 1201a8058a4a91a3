package network

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvandessel/contagion/internal/constants"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrParse is returned for malformed edge-list input.
var ErrParse = errors.New("malformed edge list")

// ReadEdgeList parses an undirected edge list into an Adjacency.
//
// Each non-blank line is either "u v" (an edge between agents u and v), a
// comment starting with '#', or an "n <count>" header declaring the agent
// count so that isolated agents can be represented. Without a header the
// agent count is one more than the largest index seen.
func ReadEdgeList(r io.Reader) (*Adjacency, error) {
	g := simple.NewUndirectedGraph()
	declared := 0
	maxID := int64(-1)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want 2 fields, got %d", ErrParse, lineNo, len(fields))
		}

		if fields[0] == "n" {
			count, err := strconv.Atoi(fields[1])
			if err != nil || count <= 0 {
				return nil, fmt.Errorf("%w: line %d: bad agent count %q", ErrParse, lineNo, fields[1])
			}
			if count > constants.MaxAgents {
				return nil, fmt.Errorf("%w: line %d: agent count %d exceeds limit %d", ErrParse, lineNo, count, constants.MaxAgents)
			}
			declared = count
			continue
		}

		u, err := parseID(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo, err)
		}
		v, err := parseID(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo, err)
		}
		if u == v {
			return nil, fmt.Errorf("%w: line %d: self-contact %d", ErrParse, lineNo, u)
		}

		g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		maxID = max(maxID, u, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list: %w", err)
	}

	n := max(declared, int(maxID)+1)
	if declared > 0 && int(maxID) >= declared {
		return nil, fmt.Errorf("%w: agent %d exceeds declared count %d", ErrParse, maxID, declared)
	}
	return FromGraph(g, n)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad agent index %q", s)
	}
	if id < 0 {
		return 0, fmt.Errorf("negative agent index %d", id)
	}
	if id >= constants.MaxAgents {
		return 0, fmt.Errorf("agent index %d exceeds limit %d", id, constants.MaxAgents)
	}
	return id, nil
}
