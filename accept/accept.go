// Package accept decides whether a constraint-passing candidate partition
// replaces the current one. Policies draw from a caller-supplied *rand.Rand
// so chain runs keep independent pseudo-random streams.
package accept

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/redistrict/partition"
)

// Policy decides the transition between two valid partitions.
type Policy interface {
	Accept(rng *rand.Rand, old, candidate *partition.Partition) bool
}

// Func adapts a plain function to the Policy interface.
type Func func(rng *rand.Rand, old, candidate *partition.Partition) bool

// Accept implements Policy.
func (f Func) Accept(rng *rand.Rand, old, candidate *partition.Partition) bool {
	return f(rng, old, candidate)
}

// AlwaysAccept transitions unconditionally; validity is already settled by
// the constraint evaluator.
func AlwaysAccept() Policy {
	return Func(func(*rand.Rand, *partition.Partition, *partition.Partition) bool {
		return true
	})
}

// Metropolis accepts a candidate with probability
// min(1, exp(-beta·(score(candidate)-score(old)))): score decreases are
// always taken, increases survive a pseudo-random draw. beta 0 degenerates
// to AlwaysAccept.
func Metropolis(score func(p *partition.Partition) float64, beta float64) Policy {
	return Func(func(rng *rand.Rand, old, candidate *partition.Partition) bool {
		delta := score(candidate) - score(old)
		if delta <= 0 {
			return true
		}
		return rng.Float64() < math.Exp(-beta*delta)
	})
}
