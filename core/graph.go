package core

import "fmt"

// Graph is an immutable undirected adjacency graph with per-node attribute
// records. Construct one with Builder.Build; after that every method is a
// pure read and safe for unsynchronized concurrent use.
type Graph struct {
	nodes []string            // sorted node IDs
	adj   map[string][]string // node ID → sorted neighbor IDs
	edges []Edge              // canonical edges, sorted
	attrs map[string]Attributes
}

// Has reports whether id is a node of g. Complexity: O(1).
func (g *Graph) Has(id string) bool {
	_, ok := g.attrs[id]
	return ok
}

// NumNodes returns the node count. Complexity: O(1).
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the undirected edge count. Complexity: O(1).
func (g *Graph) NumEdges() int { return len(g.edges) }

// Nodes returns all node IDs in sorted order. The slice is a copy.
// Complexity: O(V).
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns all edges in canonical sorted order. The slice is a copy.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the sorted neighbor IDs of id.
// The returned slice is shared and must not be mutated by the caller.
// Returns ErrNodeNotFound for an unknown node. Complexity: O(1).
func (g *Graph) Neighbors(id string) ([]string, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return nbrs, nil
}

// Degree returns the number of neighbors of id.
// Returns ErrNodeNotFound for an unknown node. Complexity: O(1).
func (g *Graph) Degree(id string) (int, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return len(nbrs), nil
}

// Attribute returns the raw attribute value for key on node id.
// Returns ErrNodeNotFound or ErrAttrNotFound. Complexity: O(1).
func (g *Graph) Attribute(id, key string) (any, error) {
	rec, ok := g.attrs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	v, ok := rec[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q on node %q", ErrAttrNotFound, key, id)
	}
	return v, nil
}

// Float returns the numeric attribute key on node id, widening integer
// kinds to float64. Returns ErrAttrType when the value is categorical.
// Complexity: O(1).
func (g *Graph) Float(id, key string) (float64, error) {
	v, err := g.Attribute(id, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %q on node %q is %T, want numeric", ErrAttrType, key, id, v)
}

// Label returns the categorical attribute key on node id.
// Returns ErrAttrType when the value is numeric. Complexity: O(1).
func (g *Graph) Label(id, key string) (string, error) {
	v, err := g.Attribute(id, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q on node %q is %T, want string", ErrAttrType, key, id, v)
	}
	return s, nil
}

// IncidentEdges returns the canonical edges touching id.
// Returns ErrNodeNotFound for an unknown node. Complexity: O(deg(id)).
func (g *Graph) IncidentEdges(id string) ([]Edge, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	out := make([]Edge, 0, len(nbrs))
	for _, n := range nbrs {
		out = append(out, NewEdge(id, n))
	}
	return out, nil
}
