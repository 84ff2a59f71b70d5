package proposals

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/redistrict/partition"
)

// defaultFlipTries bounds how often a flip is re-drawn before giving up
// (a draw is discarded when it would empty the source district).
const defaultFlipTries = 32

// RandomFlip proposes single-node moves across district boundaries.
// Construct with NewRandomFlip.
type RandomFlip struct {
	cutEdgesName string
	maxTries     int
}

// FlipOption configures a RandomFlip generator.
type FlipOption func(*RandomFlip)

// WithFlipCutEdges names the partition's CutEdges updater to read the
// boundary from, avoiding a full edge scan per proposal.
func WithFlipCutEdges(name string) FlipOption {
	return func(f *RandomFlip) { f.cutEdgesName = name }
}

// WithFlipTries overrides the re-draw budget.
func WithFlipTries(n int) FlipOption {
	return func(f *RandomFlip) { f.maxTries = n }
}

// NewRandomFlip returns a flip generator. By default it reads the cut-edge
// set from an updater named "cut_edges" when present, falling back to a
// full edge scan.
func NewRandomFlip(opts ...FlipOption) *RandomFlip {
	f := &RandomFlip{cutEdgesName: "cut_edges", maxTries: defaultFlipTries}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Propose picks a uniformly random cut edge and flips one random endpoint
// into the other endpoint's district. A flip that would empty the source
// district is re-drawn, preserving the district count; after the re-draw
// budget the proposal fails with ErrExhausted. Returns ErrNoCutEdges when
// the partition has no boundary at all.
// Complexity: O(1) per draw with a cached cut-edge updater, plus O(|V|)
// for the emptiness check.
func (f *RandomFlip) Propose(rng *rand.Rand, p *partition.Partition) (map[string]partition.District, error) {
	cut, err := boundary(p, f.cutEdgesName)
	if err != nil {
		return nil, err
	}
	if len(cut) == 0 {
		return nil, ErrNoCutEdges
	}

	for try := 0; try < f.maxTries; try++ {
		e := cut[rng.Intn(len(cut))]
		node, other := e.U, e.V
		if rng.Intn(2) == 1 {
			node, other = other, node
		}
		target, _ := p.DistrictOf(other)
		if lastOfDistrict(p, node) {
			continue
		}
		return map[string]partition.District{node: target}, nil
	}
	return nil, fmt.Errorf("%w: no flip found in %d tries", ErrExhausted, f.maxTries)
}

// lastOfDistrict reports whether node is the only member of its district.
func lastOfDistrict(p *partition.Partition, node string) bool {
	d, _ := p.DistrictOf(node)
	for _, n := range p.Graph().Nodes() {
		if n == node {
			continue
		}
		if nd, _ := p.DistrictOf(n); nd == d {
			return false
		}
	}
	return true
}
