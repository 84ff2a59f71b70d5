package constraints

import (
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/partition"
)

// SingleFlipContiguous passes iff the districts touched by the partition's
// flip set induce connected subgraphs.
//
// For a single-node flip only the source district can break, and it is
// checked locally: a BFS inside the shrunken district starting from one of
// the flipped node's former same-district neighbors must reach all the
// others, stopping as soon as it has. For a root partition (no flip
// recorded) or a multi-node flip set, the touched districts get a full
// membership scan instead.
func SingleFlipContiguous() Constraint {
	return Func(func(p *partition.Partition) bool {
		flips := p.Flips()
		switch {
		case flips == nil:
			return allDistrictsConnected(p, nil)
		case len(flips) == 1:
			return singleFlipLocal(p, flips)
		default:
			touched := make(map[partition.District]struct{}, 4)
			parent := p.Parent()
			for n, to := range flips {
				touched[to] = struct{}{}
				if from, ok := parent.DistrictOf(n); ok {
					touched[from] = struct{}{}
				}
			}
			return allDistrictsConnected(p, touched)
		}
	})
}

// singleFlipLocal checks the flipped node's former district around the
// hole the flip left behind.
func singleFlipLocal(p *partition.Partition, flips map[string]partition.District) bool {
	var node string
	for n := range flips {
		node = n
	}
	from, _ := p.Parent().DistrictOf(node)

	// Former same-district neighbors are the attachment points the
	// shrunken district must keep connected.
	nbrs, err := p.Graph().Neighbors(node)
	if err != nil {
		return false
	}
	want := make(map[string]struct{}, len(nbrs))
	for _, nb := range nbrs {
		if d, _ := p.DistrictOf(nb); d == from {
			want[nb] = struct{}{}
		}
	}
	if len(want) <= 1 {
		// Zero attachment points: the district either emptied (trivially
		// fine) or was already separated from node; one point cannot split.
		return len(want) == 1 || districtEmpty(p, from)
	}

	// BFS inside the district from one attachment point until every other
	// attachment point is found.
	var start string
	for nb := range want {
		start = nb
		break
	}
	remaining := len(want) - 1
	seen := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 && remaining > 0 {
		cur := queue[0]
		queue = queue[1:]
		curNbrs, err := p.Graph().Neighbors(cur)
		if err != nil {
			return false
		}
		for _, nb := range curNbrs {
			if d, _ := p.DistrictOf(nb); d != from {
				continue
			}
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			if _, isWanted := want[nb]; isWanted {
				remaining--
			}
			queue = append(queue, nb)
		}
	}
	return remaining == 0
}

// allDistrictsConnected scans the districts in only (all when only is nil)
// and verifies each induces one connected component.
func allDistrictsConnected(p *partition.Partition, only map[partition.District]struct{}) bool {
	members := make(map[partition.District][]string)
	for _, n := range p.Graph().Nodes() {
		d, _ := p.DistrictOf(n)
		if only != nil {
			if _, ok := only[d]; !ok {
				continue
			}
		}
		members[d] = append(members[d], n)
	}
	for d, nodes := range members {
		if !connectedWithin(p.Graph(), p, d, nodes) {
			return false
		}
	}
	return true
}

// connectedWithin BFS-checks that nodes (all members of district d) form
// one component of d's induced subgraph.
func connectedWithin(g *core.Graph, p *partition.Partition, d partition.District, nodes []string) bool {
	if len(nodes) <= 1 {
		return true
	}
	seen := map[string]struct{}{nodes[0]: {}}
	queue := []string{nodes[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		nbrs, err := g.Neighbors(cur)
		if err != nil {
			return false
		}
		for _, nb := range nbrs {
			if nd, _ := p.DistrictOf(nb); nd != d {
				continue
			}
			if _, ok := seen[nb]; ok {
				continue
			}
			seen[nb] = struct{}{}
			queue = append(queue, nb)
		}
	}
	return len(seen) == len(nodes)
}

// districtEmpty reports whether district d has no members under p.
func districtEmpty(p *partition.Partition, d partition.District) bool {
	for _, n := range p.Graph().Nodes() {
		if nd, _ := p.DistrictOf(n); nd == d {
			return false
		}
	}
	return true
}
