package partition

import "github.com/katalvlaran/redistrict/core"

// cutEdgeSet is the cached value of a CutEdges updater.
type cutEdgeSet map[core.Edge]struct{}

// CutEdgesUpdater maintains the set of edges whose endpoints lie in
// different districts. Construct with NewCutEdges.
type CutEdgesUpdater struct {
	name string
}

// NewCutEdges returns a CutEdges updater cached under name.
func NewCutEdges(name string) *CutEdgesUpdater {
	return &CutEdgesUpdater{name: name}
}

// Name implements Updater.
func (c *CutEdgesUpdater) Name() string { return c.name }

// compute classifies every edge once. Complexity: O(|E|).
func (c *CutEdgesUpdater) compute(g *core.Graph, a Assignment) (any, error) {
	set := make(cutEdgeSet, g.NumEdges()/4)
	for _, e := range g.Edges() {
		if a[e.U] != a[e.V] {
			set[e] = struct{}{}
		}
	}
	return set, nil
}

// update reclassifies only the edges incident to flipped nodes; all other
// edges keep their prior status. An edge between two flipped nodes is
// visited twice with the same verdict, which is harmless.
// Complexity: O(sum of flipped nodes' degrees).
func (c *CutEdgesUpdater) update(prev any, g *core.Graph, _, next Assignment, flips map[string]District) (any, error) {
	set := make(cutEdgeSet, len(prev.(cutEdgeSet)))
	for e := range prev.(cutEdgeSet) {
		set[e] = struct{}{}
	}
	for n := range flips {
		inc, err := g.IncidentEdges(n)
		if err != nil {
			return nil, err
		}
		for _, e := range inc {
			if next[e.U] != next[e.V] {
				set[e] = struct{}{}
			} else {
				delete(set, e)
			}
		}
	}
	return set, nil
}
