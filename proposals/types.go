package proposals

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/partition"
)

// Sentinel errors for proposal generation.
var (
	// ErrExhausted indicates no valid candidate was found within the retry
	// budget (for ReCom: no balanced tree cut across all attempts).
	ErrExhausted = errors.New("proposals: retry budget exhausted")

	// ErrNoCutEdges indicates the partition has no boundary to move
	// (all nodes in one district or districts mutually non-adjacent).
	ErrNoCutEdges = errors.New("proposals: partition has no cut edges")

	// ErrConfig indicates an invalid generator configuration.
	ErrConfig = errors.New("proposals: invalid configuration")
)

// Proposal produces a candidate flip set from the current partition.
// Implementations are stateless with respect to the chain: all randomness
// comes from rng, and p is only read.
type Proposal interface {
	Propose(rng *rand.Rand, p *partition.Partition) (map[string]partition.District, error)
}

// boundary returns the partition's cut edges. When updaterName names a
// configured CutEdges updater the cached set is used; otherwise every graph
// edge is classified in O(|E|).
func boundary(p *partition.Partition, updaterName string) ([]core.Edge, error) {
	if updaterName != "" {
		cut, err := p.CutEdges(updaterName)
		if err == nil {
			return cut, nil
		}
		if !errors.Is(err, partition.ErrUnknownUpdater) {
			return nil, err
		}
	}
	var cut []core.Edge
	for _, e := range p.Graph().Edges() {
		du, _ := p.DistrictOf(e.U)
		dv, _ := p.DistrictOf(e.V)
		if du != dv {
			cut = append(cut, e)
		}
	}
	return cut, nil
}
