package partition

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// ElectionUpdater tallies per-party vote totals per district from the
// configured vote-count columns, exposing derived per-district vote shares.
// Construct with NewElection.
type ElectionUpdater struct {
	name    string
	parties []string          // sorted party names
	columns map[string]string // party → attribute column
}

// NewElection returns an Election updater cached under name.
// partyCols maps each party name to the node attribute column holding that
// party's vote count, e.g. {"Dem": "USS12D", "Rep": "USS12R"}.
func NewElection(name string, partyCols map[string]string) *ElectionUpdater {
	parties := make([]string, 0, len(partyCols))
	cols := make(map[string]string, len(partyCols))
	for party, col := range partyCols {
		parties = append(parties, party)
		cols[party] = col
	}
	sort.Strings(parties)
	return &ElectionUpdater{name: name, parties: parties, columns: cols}
}

// Name implements Updater.
func (e *ElectionUpdater) Name() string { return e.name }

// Parties returns the configured party names in sorted order.
func (e *ElectionUpdater) Parties() []string {
	out := make([]string, len(e.parties))
	copy(out, e.parties)
	return out
}

// compute scans every node once per party. Complexity: O(|V|·parties).
func (e *ElectionUpdater) compute(g *core.Graph, a Assignment) (any, error) {
	res := e.emptyResult(a.Districts())
	for n, d := range a {
		for _, party := range e.parties {
			votes, err := g.Float(n, e.columns[party])
			if err != nil {
				return nil, err
			}
			res.totals[party][d] += votes
		}
	}
	return res, nil
}

// update moves only the flipped nodes' votes between districts.
// Complexity: O(|flips|·parties).
func (e *ElectionUpdater) update(prev any, g *core.Graph, old, _ Assignment, flips map[string]District) (any, error) {
	prior := prev.(*ElectionResult)
	res := e.emptyResult(prior.districts)
	for party, byDistrict := range prior.totals {
		for d, v := range byDistrict {
			res.totals[party][d] = v
		}
	}
	for n, to := range flips {
		from := old[n]
		if from == to {
			continue
		}
		for _, party := range e.parties {
			votes, err := g.Float(n, e.columns[party])
			if err != nil {
				return nil, err
			}
			res.totals[party][from] -= votes
			res.totals[party][to] += votes
		}
	}
	return res, nil
}

func (e *ElectionUpdater) emptyResult(districts []District) *ElectionResult {
	res := &ElectionResult{
		election:  e.name,
		parties:   e.parties,
		districts: districts,
		totals:    make(map[string]tallyValue, len(e.parties)),
	}
	for _, party := range e.parties {
		byDistrict := make(tallyValue, len(districts))
		for _, d := range districts {
			byDistrict[d] = 0
		}
		res.totals[party] = byDistrict
	}
	return res
}

// ElectionResult holds one election's per-district vote totals under a
// particular partition. Results are immutable snapshots.
type ElectionResult struct {
	election  string
	parties   []string
	districts []District
	totals    map[string]tallyValue
}

// Election returns the election name this result belongs to.
func (r *ElectionResult) Election() string { return r.election }

// Totals returns party's vote totals per district. The map is a copy.
// Returns ErrUnknownParty for an unconfigured party.
func (r *ElectionResult) Totals(party string) (map[District]float64, error) {
	byDistrict, ok := r.totals[party]
	if !ok {
		return nil, fmt.Errorf("%w: %q in election %q", ErrUnknownParty, party, r.election)
	}
	out := make(map[District]float64, len(byDistrict))
	for d, v := range byDistrict {
		out[d] = v
	}
	return out, nil
}

// Percents returns party's vote share per district, sorted ascending.
//
// The ordering is position-by-rank, not position-by-district: index 0 is
// always the lowest share in the plan, index 1 the second lowest, and so
// on. Consumers compare plans column-by-column on this ranked vector, so
// the district identity behind each position is deliberately discarded.
// A district with zero recorded votes contributes share 0.
// Returns ErrUnknownParty for an unconfigured party.
func (r *ElectionResult) Percents(party string) ([]float64, error) {
	byDistrict, ok := r.totals[party]
	if !ok {
		return nil, fmt.Errorf("%w: %q in election %q", ErrUnknownParty, party, r.election)
	}
	shares := make([]float64, 0, len(r.districts))
	for _, d := range r.districts {
		var total float64
		for _, p := range r.parties {
			total += r.totals[p][d]
		}
		if total == 0 {
			shares = append(shares, 0)
			continue
		}
		shares = append(shares, byDistrict[d]/total)
	}
	sort.Float64s(shares)
	return shares, nil
}
