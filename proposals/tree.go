package proposals

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// randomSpanningTree draws a random spanning tree of the subgraph induced
// on region: every induced edge gets a uniform random weight, then Kruskal
// with union-find (path compression, union by rank) keeps the lightest
// acyclic subset. Returns the tree as an adjacency map, or false when the
// induced subgraph is disconnected.
// Complexity: O(E log E) over the induced edges.
func randomSpanningTree(g *core.Graph, region map[string]struct{}, rng *rand.Rand) (map[string][]string, bool) {
	type weighted struct {
		e core.Edge
		w float64
	}
	var edges []weighted
	for _, e := range g.Edges() {
		if _, ok := region[e.U]; !ok {
			continue
		}
		if _, ok := region[e.V]; !ok {
			continue
		}
		edges = append(edges, weighted{e: e, w: rng.Float64()})
	}
	// Stable sort keeps canonical edge order as the tie-break, so the draw
	// is fully determined by the rng stream.
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].w < edges[j].w })

	parent := make(map[string]string, len(region))
	rank := make(map[string]int, len(region))
	for n := range region {
		parent[n] = n
	}
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(u, v string) {
		ru, rv := find(u), find(v)
		if ru == rv {
			return
		}
		if rank[ru] < rank[rv] {
			parent[ru] = rv
		} else {
			parent[rv] = ru
			if rank[ru] == rank[rv] {
				rank[ru]++
			}
		}
	}

	tree := make(map[string][]string, len(region))
	taken := 0
	for _, we := range edges {
		if taken == len(region)-1 {
			break
		}
		if find(we.e.U) == find(we.e.V) {
			continue
		}
		union(we.e.U, we.e.V)
		tree[we.e.U] = append(tree[we.e.U], we.e.V)
		tree[we.e.V] = append(tree[we.e.V], we.e.U)
		taken++
	}
	return tree, taken == len(region)-1
}

// balancedCut searches the tree for an edge whose removal splits the region
// into two sides each within epsilon·target of target, and returns the node
// set on one side of a uniformly chosen balanced edge. Returns false when
// no tree edge is balanced.
//
// The tree is rooted at its smallest node ID; subtree populations are
// accumulated in reverse BFS order, so each tree edge (v, parent(v)) is
// judged by sub(v) versus total-sub(v).
// Complexity: O(|region|).
func balancedCut(tree map[string][]string, pops map[string]float64, total, target, epsilon float64, rng *rand.Rand) (map[string]struct{}, bool) {
	if len(tree) == 0 {
		return nil, false
	}
	root := ""
	for n := range tree {
		if root == "" || n < root {
			root = n
		}
	}

	// BFS rooting.
	order := make([]string, 0, len(tree))
	parent := make(map[string]string, len(tree))
	seen := map[string]struct{}{root: {}}
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, nb := range tree[cur] {
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}

	// Subtree populations, leaves first.
	sub := make(map[string]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		sub[v] += pops[v]
		if p, ok := parent[v]; ok {
			sub[p] += sub[v]
		}
	}

	slack := epsilon * target
	var candidates []string
	for _, v := range order[1:] { // root has no parent edge
		near := sub[v]
		far := total - near
		if near >= target-slack && near <= target+slack &&
			far >= target-slack && far <= target+slack {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	// Collect the subtree under the chosen cut.
	top := candidates[rng.Intn(len(candidates))]
	side := make(map[string]struct{})
	stack := []string{top}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		side[cur] = struct{}{}
		for _, nb := range tree[cur] {
			if nb == parent[cur] {
				continue
			}
			if _, ok := side[nb]; ok {
				continue
			}
			if parent[nb] == cur {
				stack = append(stack, nb)
			}
		}
	}
	return side, true
}
