// Package core types: sentinel errors, Edge, Attributes, and the Builder
// used to assemble an immutable Graph.
package core

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for graph construction and attribute access.
var (
	// ErrEmptyNodeID indicates a node with an empty ID was added.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrDuplicateNode indicates the same node ID was added twice.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrNodeNotFound indicates an operation referenced an unknown node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSelfLoop indicates an edge whose endpoints are the same node.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates the same undirected edge was added twice.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrAttrNotFound indicates a missing attribute key on a node.
	ErrAttrNotFound = errors.New("core: attribute not found")

	// ErrAttrType indicates an attribute value of an unexpected kind.
	ErrAttrType = errors.New("core: attribute has wrong type")
)

// Attributes is a node's record of numeric and categorical fields.
// Values are float64 (numeric) or string (categorical); integer kinds are
// accepted on input and widened to float64 by Float.
type Attributes map[string]any

// Edge is an undirected edge in canonical orientation (U < V).
type Edge struct {
	U, V string
}

// NewEdge returns e in canonical orientation regardless of argument order.
func NewEdge(u, v string) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Other returns the endpoint of e opposite to id.
// The second return is false when id is not an endpoint of e.
func (e Edge) Other(id string) (string, bool) {
	switch id {
	case e.U:
		return e.V, true
	case e.V:
		return e.U, true
	}
	return "", false
}

// Builder accumulates nodes and edges, then freezes them into a Graph.
// A Builder is single-goroutine; the Graph it builds is not.
type Builder struct {
	attrs map[string]Attributes
	adj   map[string]map[string]struct{}
	edges map[Edge]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		attrs: make(map[string]Attributes),
		adj:   make(map[string]map[string]struct{}),
		edges: make(map[Edge]struct{}),
	}
}

// AddNode registers id with its attribute record. attrs may be nil.
// Returns ErrEmptyNodeID or ErrDuplicateNode on invalid input.
func (b *Builder) AddNode(id string, attrs Attributes) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if _, ok := b.attrs[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	if attrs == nil {
		attrs = Attributes{}
	}
	b.attrs[id] = attrs
	b.adj[id] = make(map[string]struct{})
	return nil
}

// AddEdge registers the undirected edge u—v. Both endpoints must already
// exist. Returns ErrSelfLoop, ErrNodeNotFound, or ErrDuplicateEdge.
func (b *Builder) AddEdge(u, v string) error {
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	for _, id := range [2]string{u, v} {
		if _, ok := b.attrs[id]; !ok {
			return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
		}
	}
	e := NewEdge(u, v)
	if _, ok := b.edges[e]; ok {
		return fmt.Errorf("%w: %s—%s", ErrDuplicateEdge, e.U, e.V)
	}
	b.edges[e] = struct{}{}
	b.adj[u][v] = struct{}{}
	b.adj[v][u] = struct{}{}
	return nil
}

// Build freezes the accumulated nodes and edges into an immutable Graph.
// Node, neighbor, and edge orderings are fixed here (sorted by ID) so every
// later traversal is deterministic. The Builder may be discarded afterwards.
// Complexity: O(V log V + E log E).
func (b *Builder) Build() *Graph {
	nodes := make([]string, 0, len(b.attrs))
	for id := range b.attrs {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	adj := make(map[string][]string, len(b.adj))
	for id, set := range b.adj {
		nbrs := make([]string, 0, len(set))
		for n := range set {
			nbrs = append(nbrs, n)
		}
		sort.Strings(nbrs)
		adj[id] = nbrs
	}

	edges := make([]Edge, 0, len(b.edges))
	for e := range b.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})

	attrs := make(map[string]Attributes, len(b.attrs))
	for id, a := range b.attrs {
		cp := make(Attributes, len(a))
		for k, v := range a {
			cp[k] = v
		}
		attrs[id] = cp
	}

	return &Graph{nodes: nodes, adj: adj, edges: edges, attrs: attrs}
}
