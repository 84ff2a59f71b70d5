package constraints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/partition"
)

// buildTee is a path A—B—C with D hanging off B:
//
//	A───B───C
//	    │
//	    D
//
// Districts: {A,B,C}=0, {D}=1. B is a cut vertex of district 0.
func buildTee(t *testing.T) *partition.Partition {
	t.Helper()
	b := core.NewBuilder()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, b.AddNode(id, nil))
	}
	require.NoError(t, b.AddEdge("A", "B"))
	require.NoError(t, b.AddEdge("B", "C"))
	require.NoError(t, b.AddEdge("B", "D"))
	p, err := partition.New(b.Build(),
		partition.Assignment{"A": 0, "B": 0, "C": 0, "D": 1})
	require.NoError(t, err)
	return p
}

func TestSingleFlipContiguous_RootPartition(t *testing.T) {
	p := buildTee(t)
	assert.True(t, constraints.SingleFlipContiguous().Evaluate(p))

	// A root partition with a torn district fails the full scan.
	b := core.NewBuilder()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, b.AddNode(id, nil))
	}
	require.NoError(t, b.AddEdge("A", "B"))
	require.NoError(t, b.AddEdge("B", "C"))
	torn, err := partition.New(b.Build(), partition.Assignment{"A": 0, "B": 1, "C": 0})
	require.NoError(t, err)
	assert.False(t, constraints.SingleFlipContiguous().Evaluate(torn))
}

// Flipping the cut vertex B out of district 0 strands A and C.
func TestSingleFlipContiguous_RejectsDisconnectingFlip(t *testing.T) {
	p := buildTee(t)

	q, err := p.WithFlips(map[string]partition.District{"B": 1})
	require.NoError(t, err)
	assert.False(t, constraints.SingleFlipContiguous().Evaluate(q))
}

// Flipping a leaf keeps the remainder connected.
func TestSingleFlipContiguous_AcceptsLeafFlip(t *testing.T) {
	p := buildTee(t)

	// C's only same-district attachment point is B, so {A,B} stays whole.
	q, err := p.WithFlips(map[string]partition.District{"C": 1})
	require.NoError(t, err)
	assert.True(t, constraints.SingleFlipContiguous().Evaluate(q))
}

// Emptying a district by a flip is not a contiguity violation.
func TestSingleFlipContiguous_EmptiedDistrict(t *testing.T) {
	p := buildTee(t)

	q, err := p.WithFlips(map[string]partition.District{"D": 0})
	require.NoError(t, err)
	assert.True(t, constraints.SingleFlipContiguous().Evaluate(q))
}

// Multi-node flip sets fall back to scanning the touched districts.
func TestSingleFlipContiguous_MultiFlip(t *testing.T) {
	p := buildTee(t)

	// Move B and C together: district 0 = {A}, district 1 = {B,C,D} — all connected.
	q, err := p.WithFlips(map[string]partition.District{"B": 1, "C": 1})
	require.NoError(t, err)
	assert.True(t, constraints.SingleFlipContiguous().Evaluate(q))

	// Move A and C: district 1 = {A,C,D} with A—C not adjacent through 1.
	q, err = p.WithFlips(map[string]partition.District{"A": 1, "C": 1})
	require.NoError(t, err)
	assert.False(t, constraints.SingleFlipContiguous().Evaluate(q))
}
