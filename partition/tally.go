package partition

import "github.com/katalvlaran/redistrict/core"

// tallyValue is the cached value of a Tally updater: district → sum.
type tallyValue map[District]float64

// TallyUpdater sums a numeric node attribute per district.
// Construct with NewTally.
type TallyUpdater struct {
	name string
	col  string
}

// NewTally returns a Tally updater cached under name, summing the numeric
// node attribute col per district.
func NewTally(name, col string) *TallyUpdater {
	return &TallyUpdater{name: name, col: col}
}

// Name implements Updater.
func (t *TallyUpdater) Name() string { return t.name }

// Column returns the attribute column being summed.
func (t *TallyUpdater) Column() string { return t.col }

// compute scans every node once. Complexity: O(|V|).
func (t *TallyUpdater) compute(g *core.Graph, a Assignment) (any, error) {
	sums := make(tallyValue, 8)
	for _, d := range a.Districts() {
		sums[d] = 0 // every district present, even if later emptied
	}
	for n, d := range a {
		w, err := g.Float(n, t.col)
		if err != nil {
			return nil, err
		}
		sums[d] += w
	}
	return sums, nil
}

// update moves only the flipped nodes' weights between district buckets.
// Complexity: O(|flips|).
func (t *TallyUpdater) update(prev any, g *core.Graph, old, _ Assignment, flips map[string]District) (any, error) {
	sums := make(tallyValue, len(prev.(tallyValue)))
	for d, s := range prev.(tallyValue) {
		sums[d] = s
	}
	for n, to := range flips {
		from := old[n]
		if from == to {
			continue
		}
		w, err := g.Float(n, t.col)
		if err != nil {
			return nil, err
		}
		sums[from] -= w
		sums[to] += w
	}
	return sums, nil
}
