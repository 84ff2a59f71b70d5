package graphio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/partition"
)

// ErrLoad indicates malformed graph input: invalid JSON, a directed or
// multigraph document, duplicate or dangling node references, or an
// adjacency table inconsistent with an undirected planar graph.
var ErrLoad = errors.New("graphio: malformed graph input")

// document covers both NetworkX JSON layouts. Exactly one of Adjacency or
// Links must be populated.
type document struct {
	Directed   bool                           `json:"directed"`
	Multigraph bool                           `json:"multigraph"`
	Nodes      []map[string]json.RawMessage   `json:"nodes"`
	Adjacency  [][]map[string]json.RawMessage `json:"adjacency"`
	Links      []map[string]json.RawMessage   `json:"links"`
}

// Load parses a NetworkX adjacency_data or node_link JSON document into an
// immutable core.Graph. All failures wrap ErrLoad. Complexity: O(|V|+|E|).
func Load(r io.Reader) (*core.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if doc.Directed {
		return nil, fmt.Errorf("%w: directed graphs are not supported", ErrLoad)
	}
	if doc.Multigraph {
		return nil, fmt.Errorf("%w: multigraphs are not supported", ErrLoad)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrLoad)
	}
	if doc.Adjacency != nil && doc.Links != nil {
		return nil, fmt.Errorf("%w: both adjacency and links present", ErrLoad)
	}
	if doc.Adjacency == nil && doc.Links == nil {
		return nil, fmt.Errorf("%w: neither adjacency nor links present", ErrLoad)
	}

	b := core.NewBuilder()
	ids := make([]string, len(doc.Nodes)) // positional IDs for adjacency rows
	for i, rec := range doc.Nodes {
		id, attrs, err := splitNode(rec, i)
		if err != nil {
			return nil, err
		}
		if err = b.AddNode(id, attrs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		ids[i] = id
	}

	if doc.Adjacency != nil {
		if err := addAdjacency(b, ids, doc.Adjacency); err != nil {
			return nil, err
		}
	} else if err := addLinks(b, doc.Links); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// LoadFile opens path and delegates to Load.
func LoadFile(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()
	return Load(f)
}

// addAdjacency consumes the adjacency_data layout: row i lists the
// neighbors of node i. Each undirected edge appears in both endpoint rows;
// a one-sided entry is rejected as asymmetric.
func addAdjacency(b *core.Builder, ids []string, rows [][]map[string]json.RawMessage) error {
	if len(rows) != len(ids) {
		return fmt.Errorf("%w: %d adjacency rows for %d nodes", ErrLoad, len(rows), len(ids))
	}
	type pair struct{ u, v string }
	seen := make(map[pair]struct{})
	for i, row := range rows {
		u := ids[i]
		for _, rec := range row {
			raw, ok := rec["id"]
			if !ok {
				return fmt.Errorf("%w: adjacency entry for %q lacks id", ErrLoad, u)
			}
			v, err := decodeID(raw)
			if err != nil {
				return fmt.Errorf("%w: adjacency entry for %q: %v", ErrLoad, u, err)
			}
			if u == v {
				return fmt.Errorf("%w: self-loop on %q", ErrLoad, u)
			}
			seen[pair{u, v}] = struct{}{}
			if _, both := seen[pair{v, u}]; both {
				if err = b.AddEdge(u, v); err != nil {
					return fmt.Errorf("%w: %v", ErrLoad, err)
				}
			}
		}
	}
	// Every half-edge must have been paired off.
	for p := range seen {
		if _, both := seen[pair{p.v, p.u}]; !both {
			return fmt.Errorf("%w: asymmetric adjacency %q→%q", ErrLoad, p.u, p.v)
		}
	}
	return nil
}

// addLinks consumes the node_link layout: each edge appears exactly once as
// a {source, target} record.
func addLinks(b *core.Builder, links []map[string]json.RawMessage) error {
	for i, rec := range links {
		u, err := linkEndpoint(rec, "source", i)
		if err != nil {
			return err
		}
		v, err := linkEndpoint(rec, "target", i)
		if err != nil {
			return err
		}
		if err = b.AddEdge(u, v); err != nil {
			return fmt.Errorf("%w: link %d: %v", ErrLoad, i, err)
		}
	}
	return nil
}

func linkEndpoint(rec map[string]json.RawMessage, key string, i int) (string, error) {
	raw, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("%w: link %d lacks %s", ErrLoad, i, key)
	}
	id, err := decodeID(raw)
	if err != nil {
		return "", fmt.Errorf("%w: link %d: %v", ErrLoad, i, err)
	}
	return id, nil
}

// splitNode separates a node record into its ID and attribute fields.
func splitNode(rec map[string]json.RawMessage, i int) (string, core.Attributes, error) {
	raw, ok := rec["id"]
	if !ok {
		return "", nil, fmt.Errorf("%w: node %d lacks id", ErrLoad, i)
	}
	id, err := decodeID(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: node %d: %v", ErrLoad, i, err)
	}
	attrs := make(core.Attributes, len(rec)-1)
	for k, v := range rec {
		if k == "id" {
			continue
		}
		var val any
		if err = json.Unmarshal(v, &val); err != nil {
			return "", nil, fmt.Errorf("%w: node %q attribute %q: %v", ErrLoad, id, k, err)
		}
		switch val.(type) {
		case string, float64, bool, nil:
			attrs[k] = val
		default:
			// Nested objects and arrays carry GIS geometry we do not model.
			continue
		}
	}
	return id, attrs, nil
}

// decodeID accepts string or numeric node IDs, normalizing numbers to
// their shortest decimal form.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("id %s is neither string nor number", string(raw))
}

// Assignment extracts an initial plan from the node attribute column,
// mapping each distinct district label (in sorted order) onto a dense
// partition.District. The returned map records label → district.
// All failures wrap ErrLoad.
func Assignment(g *core.Graph, column string) (partition.Assignment, map[string]partition.District, error) {
	labels := make(map[string]string, g.NumNodes())
	distinct := make(map[string]struct{})
	for _, n := range g.Nodes() {
		v, err := g.Attribute(n, column)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		var label string
		switch x := v.(type) {
		case string:
			label = x
		case float64:
			label = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			return nil, nil, fmt.Errorf("%w: node %q column %q is %T, want label", ErrLoad, n, column, v)
		}
		labels[n] = label
		distinct[label] = struct{}{}
	}

	sorted := make([]string, 0, len(distinct))
	for l := range distinct {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)
	byLabel := make(map[string]partition.District, len(sorted))
	for i, l := range sorted {
		byLabel[l] = partition.District(i)
	}

	a := make(partition.Assignment, len(labels))
	for n, l := range labels {
		a[n] = byLabel[l]
	}
	return a, byLabel, nil
}
