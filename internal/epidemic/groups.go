package epidemic

import (
	"fmt"
	"math/rand/v2"

	"github.com/nvandessel/contagion/internal/network"
)

// Rand is the random source a run draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Perm returns a uniform permutation of [0, n).
	Perm(n int) []int
}

// NewRand returns the PCG-backed source used for a seed. Runs given the same
// seed draw the same stream.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Group is a fixed set of monitored agents. Members keeps sampling order and
// may contain repeats; membership tests are set lookups.
type Group struct {
	members []int
	set     map[int]struct{}
}

// NewGroup builds a Group from the given members.
func NewGroup(members []int) *Group {
	g := &Group{
		members: append([]int(nil), members...),
		set:     make(map[int]struct{}, len(members)),
	}
	for _, m := range members {
		g.set[m] = struct{}{}
	}
	return g
}

// Contains reports whether agent i belongs to the group.
func (g *Group) Contains(i int) bool {
	_, ok := g.set[i]
	return ok
}

// Members returns a copy of the members in sampling order.
func (g *Group) Members() []int {
	return append([]int(nil), g.members...)
}

// Len returns the number of sampled members, counting repeats.
func (g *Group) Len() int {
	return len(g.members)
}

// Distinct returns the number of distinct agents in the group.
func (g *Group) Distinct() int {
	return len(g.set)
}

// RandomTestGroup samples size distinct agents out of n uniformly at random.
func RandomTestGroup(n, size int, rng Rand) (*Group, error) {
	if err := validateGroupSize(n, size); err != nil {
		return nil, err
	}
	return NewGroup(rng.Perm(n)[:size]), nil
}

// FriendTestGroup builds the contact-sampled group from a random group. For
// every entry in a member's contact list, one contact is drawn uniformly from
// that same list, so the group's size is the summed degree of the random
// group rather than its member count.
func FriendTestGroup(adj *network.Adjacency, random *Group, rng Rand) (*Group, error) {
	var friends []int
	for _, r := range random.members {
		contacts := adj.Contacts(r)
		if len(contacts) == 0 {
			return nil, fmt.Errorf("%w: agent %d", ErrEmptyContactList, r)
		}
		for range contacts {
			friends = append(friends, contacts[rng.IntN(len(contacts))])
		}
	}
	return NewGroup(friends), nil
}
