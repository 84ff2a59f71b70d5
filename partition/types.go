package partition

import (
	"errors"
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// Sentinel errors for partition construction and value access.
var (
	// ErrInvalidAssignment indicates an assignment inconsistent with the graph
	// or with the partition's district set.
	ErrInvalidAssignment = errors.New("partition: invalid assignment")

	// ErrUnknownUpdater indicates a value request for an unconfigured name.
	ErrUnknownUpdater = errors.New("partition: unknown updater")

	// ErrDuplicateUpdater indicates two updaters registered under one name.
	ErrDuplicateUpdater = errors.New("partition: duplicate updater name")

	// ErrUpdaterKind indicates a typed accessor applied to the wrong kind.
	ErrUpdaterKind = errors.New("partition: updater has different kind")

	// ErrUnknownParty indicates an election query for an unconfigured party.
	ErrUnknownParty = errors.New("partition: unknown party")
)

// District identifies one district of a plan. Districts form a small finite
// set fixed at Partition construction.
type District int

// Assignment maps every node ID of a graph to its district.
type Assignment map[string]District

// Clone returns an independent copy of a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for n, d := range a {
		out[n] = d
	}
	return out
}

// Apply returns a copy of a with flips applied. a is not modified.
func (a Assignment) Apply(flips map[string]District) Assignment {
	out := a.Clone()
	for n, d := range flips {
		out[n] = d
	}
	return out
}

// Districts returns the sorted set of district IDs present in a.
func (a Assignment) Districts() []District {
	seen := make(map[District]struct{}, 8)
	for _, d := range a {
		seen[d] = struct{}{}
	}
	out := make([]District, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Diff returns the flips that transform a into b, i.e. the symmetric
// difference of the two node→district mappings keyed by node.
// Both assignments must cover the same node set.
func (a Assignment) Diff(b Assignment) (map[string]District, error) {
	if len(a) != len(b) {
		return nil, errors.New("partition: assignments cover different node sets")
	}
	flips := make(map[string]District)
	for n, d := range b {
		old, ok := a[n]
		if !ok {
			return nil, errors.New("partition: assignments cover different node sets")
		}
		if old != d {
			flips[n] = d
		}
	}
	return flips, nil
}

// Updater computes one named aggregate value of a Partition.
// The set of kinds is closed within this package; construct instances with
// NewTally, NewCutEdges, or NewElection.
type Updater interface {
	// Name is the key under which the computed value is cached.
	Name() string

	// compute builds the value from scratch in O(|V|+|E|).
	compute(g *core.Graph, a Assignment) (any, error)
}

// incremental is implemented by updater kinds that can refresh their value
// from the previous one touching only flipped nodes. Kinds without it fall
// back to compute on every transition.
type incremental interface {
	// update derives the next value from prev given the flip set.
	// old is the pre-flip assignment, next the post-flip one.
	update(prev any, g *core.Graph, old, next Assignment, flips map[string]District) (any, error)
}
