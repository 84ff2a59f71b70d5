package partition

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// Partition binds a graph, an assignment, and the cached values of every
// configured updater. Partitions are immutable: transitions produce a new
// Partition via WithFlips or WithAssignment, never mutate an existing one,
// so a chain's history can be held and compared freely.
type Partition struct {
	graph      *core.Graph
	assignment Assignment
	districts  []District // sorted, fixed at construction
	updaters   []Updater
	values     map[string]any

	parent *Partition
	flips  map[string]District // nil for a root partition
}

// New constructs a root Partition, validating the assignment against the
// graph and computing every updater value from scratch.
//
// Validation: every graph node must be assigned, every assigned node must
// exist in the graph. Violations return ErrInvalidAssignment.
// Complexity: O(|V|+|E|) per updater.
func New(g *core.Graph, a Assignment, updaters ...Updater) (*Partition, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrInvalidAssignment)
	}
	if len(a) != g.NumNodes() {
		return nil, fmt.Errorf("%w: %d nodes assigned, graph has %d",
			ErrInvalidAssignment, len(a), g.NumNodes())
	}
	for n := range a {
		if !g.Has(n) {
			return nil, fmt.Errorf("%w: node %q not in graph", ErrInvalidAssignment, n)
		}
	}

	byName := make(map[string]struct{}, len(updaters))
	for _, u := range updaters {
		if _, dup := byName[u.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUpdater, u.Name())
		}
		byName[u.Name()] = struct{}{}
	}

	p := &Partition{
		graph:      g,
		assignment: a.Clone(),
		districts:  a.Districts(),
		updaters:   updaters,
		values:     make(map[string]any, len(updaters)),
	}
	for _, u := range updaters {
		v, err := u.compute(g, p.assignment)
		if err != nil {
			return nil, err
		}
		p.values[u.Name()] = v
	}
	return p, nil
}

// WithFlips produces the successor Partition obtained by reassigning the
// flipped nodes. Updaters that support incremental refresh touch only the
// affected districts and edges; the rest recompute from scratch.
//
// Flipping a node to a district outside the partition's district set, or a
// node not in the graph, returns ErrInvalidAssignment.
// Complexity: proportional to the flipped nodes' total degree for the
// built-in updater kinds.
func (p *Partition) WithFlips(flips map[string]District) (*Partition, error) {
	known := make(map[District]struct{}, len(p.districts))
	for _, d := range p.districts {
		known[d] = struct{}{}
	}
	for n, d := range flips {
		if !p.graph.Has(n) {
			return nil, fmt.Errorf("%w: node %q not in graph", ErrInvalidAssignment, n)
		}
		if _, ok := known[d]; !ok {
			return nil, fmt.Errorf("%w: undefined district %d", ErrInvalidAssignment, d)
		}
	}

	next := &Partition{
		graph:      p.graph,
		assignment: p.assignment.Apply(flips),
		districts:  p.districts,
		updaters:   p.updaters,
		values:     make(map[string]any, len(p.updaters)),
		parent:     p,
		flips:      flips,
	}
	for _, u := range p.updaters {
		var (
			v   any
			err error
		)
		if inc, ok := u.(incremental); ok {
			v, err = inc.update(p.values[u.Name()], p.graph, p.assignment, next.assignment, flips)
		} else {
			v, err = u.compute(p.graph, next.assignment)
		}
		if err != nil {
			return nil, err
		}
		next.values[u.Name()] = v
	}
	return next, nil
}

// WithAssignment produces the successor Partition for a full replacement
// assignment by diffing it against the current one and delegating to
// WithFlips. The new assignment must cover exactly the graph's node set.
func (p *Partition) WithAssignment(a Assignment) (*Partition, error) {
	flips, err := p.assignment.Diff(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssignment, err)
	}
	return p.WithFlips(flips)
}

// Graph returns the underlying immutable graph.
func (p *Partition) Graph() *core.Graph { return p.graph }

// Assignment returns a copy of the node→district mapping.
func (p *Partition) Assignment() Assignment { return p.assignment.Clone() }

// DistrictOf returns the district of node n and whether n is assigned.
func (p *Partition) DistrictOf(n string) (District, bool) {
	d, ok := p.assignment[n]
	return d, ok
}

// Districts returns the partition's sorted district set.
// The slice is shared and must not be mutated.
func (p *Partition) Districts() []District { return p.districts }

// NumDistricts returns the size of the district set.
func (p *Partition) NumDistricts() int { return len(p.districts) }

// Parent returns the Partition this one was derived from, or nil for a root.
func (p *Partition) Parent() *Partition { return p.parent }

// Flips returns the flip set that produced this Partition from its parent,
// or nil for a root. The map is shared and must not be mutated.
func (p *Partition) Flips() map[string]District { return p.flips }

// Value returns the cached value for the named updater.
// Returns ErrUnknownUpdater for an unconfigured name.
func (p *Partition) Value(name string) (any, error) {
	v, ok := p.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpdater, name)
	}
	return v, nil
}

// Tally returns the per-district totals of the named Tally updater.
// The map is a copy. Returns ErrUnknownUpdater or ErrUpdaterKind.
func (p *Partition) Tally(name string) (map[District]float64, error) {
	v, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	t, ok := v.(tallyValue)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a Tally", ErrUpdaterKind, name)
	}
	out := make(map[District]float64, len(t))
	for d, sum := range t {
		out[d] = sum
	}
	return out, nil
}

// CutEdges returns the boundary edges recorded by the named CutEdges
// updater, in canonical sorted order. Returns ErrUnknownUpdater or
// ErrUpdaterKind.
func (p *Partition) CutEdges(name string) ([]core.Edge, error) {
	v, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	set, ok := v.(cutEdgeSet)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not CutEdges", ErrUpdaterKind, name)
	}
	out := make([]core.Edge, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out, nil
}

// NumCutEdges returns the size of the named cut-edge set.
func (p *Partition) NumCutEdges(name string) (int, error) {
	v, err := p.Value(name)
	if err != nil {
		return 0, err
	}
	set, ok := v.(cutEdgeSet)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not CutEdges", ErrUpdaterKind, name)
	}
	return len(set), nil
}

// Election returns the result of the named Election updater.
// Returns ErrUnknownUpdater or ErrUpdaterKind.
func (p *Partition) Election(name string) (*ElectionResult, error) {
	v, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*ElectionResult)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an Election", ErrUpdaterKind, name)
	}
	return r, nil
}
