package grid

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/partition"
)

// Sentinel errors for lattice generation.
var (
	// ErrBadDims indicates rows or cols below 1.
	ErrBadDims = errors.New("grid: rows and cols must be at least 1")
	// ErrBadDistricts indicates a district count outside [1, cols].
	ErrBadDistricts = errors.New("grid: districts must lie in [1, cols]")
)

// Default attribute columns written onto lattice nodes.
const (
	PopCol = "population"
	DemCol = "dem_votes"
	RepCol = "rep_votes"
)

// LatticeOptions holds tunable lattice parameters.
// Use DefaultLatticeOptions to obtain the baseline setup.
type LatticeOptions struct {
	// Districts is the number of vertical stripes in the initial assignment.
	Districts int
	// Population is the population written to every node's PopCol.
	Population float64
	// Turnout is the total votes cast per node (DemCol + RepCol).
	Turnout float64
	// Noise perturbs each node's Democratic share by up to ±Noise.
	Noise float64
	// Seed drives the noise stream; fixed seeds reproduce lattices exactly.
	Seed int64
}

// Option mutates LatticeOptions.
type Option func(*LatticeOptions)

// DefaultLatticeOptions returns the baseline:
// 2 districts, population 10 per node, turnout 8, no noise, seed 1.
func DefaultLatticeOptions() LatticeOptions {
	return LatticeOptions{Districts: 2, Population: 10, Turnout: 8, Noise: 0, Seed: 1}
}

// WithDistricts sets the stripe count of the initial assignment.
func WithDistricts(k int) Option {
	return func(o *LatticeOptions) { o.Districts = k }
}

// WithPopulation sets the per-node population.
func WithPopulation(pop float64) Option {
	return func(o *LatticeOptions) { o.Population = pop }
}

// WithTurnout sets the per-node total vote count.
func WithTurnout(votes float64) Option {
	return func(o *LatticeOptions) { o.Turnout = votes }
}

// WithNoise sets the vote-share perturbation amplitude.
func WithNoise(amp float64) Option {
	return func(o *LatticeOptions) { o.Noise = amp }
}

// WithSeed sets the noise stream seed.
func WithSeed(seed int64) Option {
	return func(o *LatticeOptions) { o.Seed = seed }
}

// NodeID returns the lattice node ID for row r, column c.
func NodeID(r, c int) string { return fmt.Sprintf("%d-%d", r, c) }

// Lattice builds a connected rows×cols precinct lattice with 4-neighbor
// adjacency, per-node population and two-party vote attributes, and a
// vertical-stripe assignment into opts.Districts districts.
//
// The Democratic share slides from 0.3 in the leftmost column to 0.7 in the
// rightmost (plus optional noise), so stripe districts have distinct,
// predictable leanings. Complexity: O(rows·cols).
func Lattice(rows, cols int, opts ...Option) (*core.Graph, partition.Assignment, error) {
	o := DefaultLatticeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if rows < 1 || cols < 1 {
		return nil, nil, fmt.Errorf("%w: %d×%d", ErrBadDims, rows, cols)
	}
	if o.Districts < 1 || o.Districts > cols {
		return nil, nil, fmt.Errorf("%w: %d districts over %d cols", ErrBadDistricts, o.Districts, cols)
	}

	rng := rand.New(rand.NewSource(o.Seed))
	b := core.NewBuilder()
	assignment := make(partition.Assignment, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			share := 0.3
			if cols > 1 {
				share += 0.4 * float64(c) / float64(cols-1)
			}
			if o.Noise > 0 {
				share += (2*rng.Float64() - 1) * o.Noise
			}
			if share < 0 {
				share = 0
			}
			if share > 1 {
				share = 1
			}
			dem := o.Turnout * share
			if err := b.AddNode(NodeID(r, c), core.Attributes{
				PopCol: o.Population,
				DemCol: dem,
				RepCol: o.Turnout - dem,
			}); err != nil {
				return nil, nil, err
			}
			assignment[NodeID(r, c)] = partition.District(c * o.Districts / cols)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				if err := b.AddEdge(NodeID(r, c), NodeID(r, c+1)); err != nil {
					return nil, nil, err
				}
			}
			if r+1 < rows {
				if err := b.AddEdge(NodeID(r, c), NodeID(r+1, c)); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return b.Build(), assignment, nil
}
