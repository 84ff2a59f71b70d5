package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/core"
)

// buildSquare constructs a 4-cycle A—B—D—C—A with population attributes:
//
//	A───B
//	│   │
//	C───D
func buildSquare(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, b.AddNode(id, core.Attributes{"pop": 10.0, "county": "X"}))
	}
	require.NoError(t, b.AddEdge("A", "B"))
	require.NoError(t, b.AddEdge("A", "C"))
	require.NoError(t, b.AddEdge("B", "D"))
	require.NoError(t, b.AddEdge("C", "D"))
	return b.Build()
}

func TestBuilder_Validation(t *testing.T) {
	b := core.NewBuilder()

	assert.ErrorIs(t, b.AddNode("", nil), core.ErrEmptyNodeID)

	require.NoError(t, b.AddNode("A", nil))
	assert.ErrorIs(t, b.AddNode("A", nil), core.ErrDuplicateNode)

	assert.ErrorIs(t, b.AddEdge("A", "A"), core.ErrSelfLoop)
	assert.ErrorIs(t, b.AddEdge("A", "Z"), core.ErrNodeNotFound)

	require.NoError(t, b.AddNode("B", nil))
	require.NoError(t, b.AddEdge("A", "B"))
	// Same edge in the opposite orientation is still a duplicate.
	assert.ErrorIs(t, b.AddEdge("B", "A"), core.ErrDuplicateEdge)
}

func TestGraph_Topology(t *testing.T) {
	g := buildSquare(t)

	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Nodes())
	assert.True(t, g.Has("A"))
	assert.False(t, g.Has("Z"))

	nbrs, err := g.Neighbors("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, nbrs)

	deg, err := g.Degree("D")
	require.NoError(t, err)
	assert.Equal(t, 2, deg)

	_, err = g.Neighbors("Z")
	assert.ErrorIs(t, err, core.ErrNodeNotFound)

	edges := g.Edges()
	assert.Equal(t, []core.Edge{
		{U: "A", V: "B"},
		{U: "A", V: "C"},
		{U: "B", V: "D"},
		{U: "C", V: "D"},
	}, edges)
}

func TestGraph_Attributes(t *testing.T) {
	g := buildSquare(t)

	pop, err := g.Float("A", "pop")
	require.NoError(t, err)
	assert.Equal(t, 10.0, pop)

	county, err := g.Label("A", "county")
	require.NoError(t, err)
	assert.Equal(t, "X", county)

	_, err = g.Float("A", "county")
	assert.ErrorIs(t, err, core.ErrAttrType)

	_, err = g.Label("A", "pop")
	assert.ErrorIs(t, err, core.ErrAttrType)

	_, err = g.Float("A", "missing")
	assert.ErrorIs(t, err, core.ErrAttrNotFound)

	_, err = g.Float("Z", "pop")
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestGraph_FloatWidensIntegers(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddNode("A", core.Attributes{"i": 7, "i64": int64(8)}))
	g := b.Build()

	i, err := g.Float("A", "i")
	require.NoError(t, err)
	assert.Equal(t, 7.0, i)

	i64, err := g.Float("A", "i64")
	require.NoError(t, err)
	assert.Equal(t, 8.0, i64)
}

func TestEdge_Canonical(t *testing.T) {
	assert.Equal(t, core.NewEdge("B", "A"), core.NewEdge("A", "B"))

	e := core.NewEdge("B", "A")
	other, ok := e.Other("A")
	require.True(t, ok)
	assert.Equal(t, "B", other)

	_, ok = e.Other("Z")
	assert.False(t, ok)
}

func TestGraph_IncidentEdges(t *testing.T) {
	g := buildSquare(t)

	inc, err := g.IncidentEdges("A")
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{U: "A", V: "B"}, {U: "A", V: "C"}}, inc)
}

func TestGraph_CopiesAreIndependent(t *testing.T) {
	g := buildSquare(t)

	nodes := g.Nodes()
	nodes[0] = "mutated"
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Nodes())

	edges := g.Edges()
	edges[0] = core.Edge{U: "X", V: "Y"}
	assert.Equal(t, core.Edge{U: "A", V: "B"}, g.Edges()[0])
}
