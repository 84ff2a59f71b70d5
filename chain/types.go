package chain

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/redistrict/accept"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/proposals"
)

// ErrConfig indicates an invalid chain configuration.
var ErrConfig = errors.New("chain: invalid configuration")

// defaultRetryBudget is how many times one step re-invokes a failing
// proposal generator before the step becomes a self-loop.
const defaultRetryBudget = 4

// Config fixes a chain's behavior. Proposal, Initial, and TotalSteps are
// required; a nil Accept defaults to accept.AlwaysAccept.
type Config struct {
	// Proposal generates candidate flip sets.
	Proposal proposals.Proposal

	// Constraints gate candidates, evaluated in order with short-circuit
	// rejection. May be empty.
	Constraints []constraints.Constraint

	// Accept decides transitions among constraint-passing candidates.
	Accept accept.Policy

	// Initial is the starting partition of every run.
	Initial *partition.Partition

	// TotalSteps is the exact number of partitions each run emits.
	TotalSteps int
}

// Option configures optional chain behavior.
type Option func(*Chain)

// WithSeed fixes the base seed from which every run derives its own
// pseudo-random stream. Identical seeds reproduce whole sessions.
func WithSeed(seed int64) Option {
	return func(c *Chain) { c.seed = seed }
}

// WithRetryBudget overrides how many proposal attempts one step makes
// before self-looping. n < 1 is ignored.
func WithRetryBudget(n int) Option {
	return func(c *Chain) {
		if n >= 1 {
			c.retryBudget = n
		}
	}
}

// WithLogger attaches a structured logger for per-step diagnostics.
// Without it the chain logs nowhere.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// Stats counts step outcomes of one run. Steps is always the sum of the
// other four once a run finishes.
type Stats struct {
	// Steps is the number of partitions emitted so far.
	Steps int
	// Accepted counts transitions to a new partition.
	Accepted int
	// Rejected counts candidates failing a constraint.
	Rejected int
	// NotAccepted counts valid candidates refused by the acceptance policy.
	NotAccepted int
	// Exhausted counts steps whose proposal generator spent the retry
	// budget without producing a candidate.
	Exhausted int
}
