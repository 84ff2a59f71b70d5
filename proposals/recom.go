package proposals

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/redistrict/partition"
)

// defaultPairDraws bounds how many adjacent district pairs one Propose call
// may try before reporting exhaustion.
const defaultPairDraws = 8

// ReComConfig fixes the parameters of a recombination generator. The zero
// value is invalid; fill every field and pass it to NewReCom.
type ReComConfig struct {
	// PopCol is the numeric node attribute holding population counts.
	PopCol string

	// PopTarget is the ideal district population
	// (total population / district count).
	PopTarget float64

	// Epsilon is the allowed fractional deviation of each side of a cut
	// from PopTarget.
	Epsilon float64

	// NodeRepeats is how many independent spanning trees are drawn for one
	// merged district pair before re-drawing the pair.
	NodeRepeats int

	// CutEdgesName optionally names the partition's CutEdges updater used
	// to sample adjacent district pairs; empty falls back to an edge scan.
	CutEdgesName string

	// PairDraws bounds the number of district pairs tried per proposal.
	// Zero means the default of 8.
	PairDraws int
}

// ReCom is the tree-recombination proposal generator.
// Construct with NewReCom.
type ReCom struct {
	cfg ReComConfig
}

// NewReCom validates cfg and returns a recombination generator.
// Returns ErrConfig for an empty PopCol, non-positive PopTarget or
// NodeRepeats, or a negative Epsilon.
func NewReCom(cfg ReComConfig) (*ReCom, error) {
	switch {
	case cfg.PopCol == "":
		return nil, fmt.Errorf("%w: PopCol is empty", ErrConfig)
	case cfg.PopTarget <= 0:
		return nil, fmt.Errorf("%w: PopTarget %v must be positive", ErrConfig, cfg.PopTarget)
	case cfg.Epsilon < 0:
		return nil, fmt.Errorf("%w: Epsilon %v must be non-negative", ErrConfig, cfg.Epsilon)
	case cfg.NodeRepeats < 1:
		return nil, fmt.Errorf("%w: NodeRepeats %d must be at least 1", ErrConfig, cfg.NodeRepeats)
	}
	if cfg.PairDraws == 0 {
		cfg.PairDraws = defaultPairDraws
	}
	if cfg.CutEdgesName == "" {
		cfg.CutEdgesName = "cut_edges"
	}
	return &ReCom{cfg: cfg}, nil
}

// Propose merges the two districts across a random cut edge, draws up to
// NodeRepeats random spanning trees of the merged region, and on the first
// tree holding a population-balanced edge returns the flip set that splits
// the region there. Both sides of the returned plan are connected by
// construction. After PairDraws pairs without a balanced cut, Propose
// fails with ErrExhausted. Returns ErrNoCutEdges for a boundary-less
// partition.
// Complexity: O(NodeRepeats · E_region log E_region) per pair.
func (r *ReCom) Propose(rng *rand.Rand, p *partition.Partition) (map[string]partition.District, error) {
	cut, err := boundary(p, r.cfg.CutEdgesName)
	if err != nil {
		return nil, err
	}
	if len(cut) == 0 {
		return nil, ErrNoCutEdges
	}
	g := p.Graph()

	for draw := 0; draw < r.cfg.PairDraws; draw++ {
		e := cut[rng.Intn(len(cut))]
		da, _ := p.DistrictOf(e.U)
		db, _ := p.DistrictOf(e.V)

		// Merged region and its populations.
		region := make(map[string]struct{})
		pops := make(map[string]float64)
		var total float64
		for _, n := range g.Nodes() {
			d, _ := p.DistrictOf(n)
			if d != da && d != db {
				continue
			}
			w, ferr := g.Float(n, r.cfg.PopCol)
			if ferr != nil {
				return nil, ferr
			}
			region[n] = struct{}{}
			pops[n] = w
			total += w
		}

		for rep := 0; rep < r.cfg.NodeRepeats; rep++ {
			tree, ok := randomSpanningTree(g, region, rng)
			if !ok {
				break // region disconnected; this pair cannot recombine
			}
			side, ok := balancedCut(tree, pops, total, r.cfg.PopTarget, r.cfg.Epsilon, rng)
			if !ok {
				continue
			}
			flips := make(map[string]partition.District, len(region))
			for n := range region {
				if _, in := side[n]; in {
					flips[n] = da
				} else {
					flips[n] = db
				}
			}
			return flips, nil
		}
	}
	return nil, fmt.Errorf("%w: no balanced cut in %d pair draws × %d trees",
		ErrExhausted, r.cfg.PairDraws, r.cfg.NodeRepeats)
}
