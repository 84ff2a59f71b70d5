package constraints

import "github.com/katalvlaran/redistrict/partition"

// Constraint is a pure predicate over a partition. Implementations must
// not mutate p and must not fail: a partition the constraint cannot judge
// (e.g. a missing updater) is simply invalid.
type Constraint interface {
	Evaluate(p *partition.Partition) bool
}

// Func adapts a plain function to the Constraint interface.
type Func func(p *partition.Partition) bool

// Evaluate implements Constraint.
func (f Func) Evaluate(p *partition.Partition) bool { return f(p) }

// UpperBound passes iff metric(p) ≤ bound.
func UpperBound(metric func(p *partition.Partition) float64, bound float64) Constraint {
	return Func(func(p *partition.Partition) bool {
		return metric(p) <= bound
	})
}

// WithinPercentOfIdeal passes iff every district's population (read from
// the named Tally updater) lies within epsilon·ideal of ideal. With
// epsilon 0 only exactly ideal populations pass.
func WithinPercentOfIdeal(tallyName string, ideal, epsilon float64) Constraint {
	return Func(func(p *partition.Partition) bool {
		pops, err := p.Tally(tallyName)
		if err != nil {
			return false
		}
		slack := epsilon * ideal
		for _, pop := range pops {
			if pop < ideal-slack || pop > ideal+slack {
				return false
			}
		}
		return true
	})
}

// AllValid evaluates cs in order against p, short-circuiting on the first
// failure.
func AllValid(p *partition.Partition, cs ...Constraint) bool {
	for _, c := range cs {
		if !c.Evaluate(p) {
			return false
		}
	}
	return true
}
