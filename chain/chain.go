package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/katalvlaran/redistrict/accept"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/proposals"
)

// runSeedStride separates per-run seed streams; any odd constant with
// well-mixed bits works (this one is Knuth's 64-bit LCG multiplier).
const runSeedStride int64 = 0x5851F42D4C957F2D

// Chain is an immutable Markov chain configuration over districting plans.
// Construct with New; start walks with Run.
type Chain struct {
	cfg         Config
	seed        int64
	retryBudget int
	logger      *zap.Logger
	runs        atomic.Int64
}

// New validates cfg and returns a Chain. Returns ErrConfig for a nil
// proposal, nil initial partition, or non-positive step bound.
func New(cfg Config, opts ...Option) (*Chain, error) {
	switch {
	case cfg.Proposal == nil:
		return nil, fmt.Errorf("%w: nil proposal", ErrConfig)
	case cfg.Initial == nil:
		return nil, fmt.Errorf("%w: nil initial partition", ErrConfig)
	case cfg.TotalSteps < 1:
		return nil, fmt.Errorf("%w: TotalSteps %d must be positive", ErrConfig, cfg.TotalSteps)
	}
	if cfg.Accept == nil {
		cfg.Accept = accept.AlwaysAccept()
	}
	c := &Chain{
		cfg:         cfg,
		seed:        1,
		retryBudget: defaultRetryBudget,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TotalSteps returns the configured step bound.
func (c *Chain) TotalSteps() int { return c.cfg.TotalSteps }

// Run starts a fresh walk from the initial partition. Each call derives an
// independent pseudo-random stream from the chain's base seed and a run
// counter, so concurrent and repeated runs never share state.
func (c *Chain) Run(ctx context.Context) *Run {
	idx := c.runs.Add(1)
	seed := c.seed + (idx-1)*runSeedStride
	return &Run{
		chain:   c,
		ctx:     ctx,
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
		current: c.cfg.Initial,
		logger:  c.logger.With(zap.Int64("run", idx)),
	}
}

// Walk executes one complete fresh run, calling visit on every emitted
// partition. It stops early when visit errors or ctx is cancelled,
// returning the cause.
func (c *Chain) Walk(ctx context.Context, visit func(p *partition.Partition) error) error {
	run := c.Run(ctx)
	for p, ok := run.Next(); ok; p, ok = run.Next() {
		if err := visit(p); err != nil {
			return err
		}
	}
	return run.Err()
}

// Run is the mutable cursor of one chain walk. Not safe for concurrent
// use; start several Runs for parallelism instead.
type Run struct {
	chain   *Chain
	ctx     context.Context
	rng     *rand.Rand
	seed    int64
	current *partition.Partition
	stats   Stats
	err     error
	logger  *zap.Logger
}

// Seed returns the seed of this run's pseudo-random stream.
func (r *Run) Seed() int64 { return r.seed }

// Stats returns a snapshot of the run's step-outcome counters.
func (r *Run) Stats() Stats { return r.stats }

// Err reports why the run stopped early: the context's error after
// cancellation, or an internal updater failure. A run that emitted all its
// steps reports nil.
func (r *Run) Err() error { return r.err }

// Next advances the chain one step and returns the resulting partition.
// It returns false once TotalSteps partitions have been emitted, after
// cancellation, or after an internal error (see Err). Cancellation is
// observed only between steps.
func (r *Run) Next() (*partition.Partition, bool) {
	if r.err != nil || r.stats.Steps >= r.chain.cfg.TotalSteps {
		return nil, false
	}
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return nil, false
	}

	step := r.stats.Steps + 1
	candidate, outcome := r.propose()
	if r.err != nil {
		return nil, false
	}
	if candidate != nil {
		if !constraints.AllValid(candidate, r.chain.cfg.Constraints...) {
			candidate, outcome = nil, "rejected"
			r.stats.Rejected++
		} else if !r.chain.cfg.Accept.Accept(r.rng, r.current, candidate) {
			candidate, outcome = nil, "not-accepted"
			r.stats.NotAccepted++
		}
	}
	if candidate != nil {
		r.current = candidate
		r.stats.Accepted++
	}
	r.stats.Steps = step
	r.logger.Debug("chain step",
		zap.Int("step", step),
		zap.String("outcome", outcome))
	return r.current, true
}

// propose invokes the generator up to the retry budget. A nil candidate
// with outcome "exhausted" means the step self-loops; a permanent internal
// failure poisons the run instead.
func (r *Run) propose() (*partition.Partition, string) {
	for attempt := 0; attempt < r.chain.retryBudget; attempt++ {
		flips, err := r.chain.cfg.Proposal.Propose(r.rng, r.current)
		if err != nil {
			if errors.Is(err, proposals.ErrExhausted) || errors.Is(err, proposals.ErrNoCutEdges) {
				continue
			}
			r.err = err
			return nil, "error"
		}
		candidate, err := r.current.WithFlips(flips)
		if err != nil {
			r.err = err
			return nil, "error"
		}
		return candidate, "accepted"
	}
	r.stats.Exhausted++
	r.logger.Warn("proposal retry budget exhausted",
		zap.Int("step", r.stats.Steps+1),
		zap.Int("budget", r.chain.retryBudget))
	return nil, "exhausted"
}
