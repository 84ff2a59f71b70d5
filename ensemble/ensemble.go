// Package ensemble runs many independent walks of one chain in parallel
// and gathers a per-step metric from each. Runs are embarrassingly
// parallel: the graph is immutable, partitions are never shared between
// runs, and every run owns an independent pseudo-random stream, so the
// only coordination is the errgroup collecting results.
package ensemble

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/partition"
)

// ErrConfig indicates an invalid ensemble request.
var ErrConfig = errors.New("ensemble: invalid configuration")

// MetricFunc extracts one row of observations from an emitted partition,
// e.g. the ranked vote shares of an election.
type MetricFunc func(p *partition.Partition) ([]float64, error)

// RunResult is one run's collected trajectory.
type RunResult struct {
	// ID labels the run in logs and downstream exports.
	ID uuid.UUID
	// Seed is the run's pseudo-random stream seed, for reproduction.
	Seed int64
	// Steps holds one metric row per emitted partition.
	Steps [][]float64
	// Stats are the run's step-outcome counters.
	Stats chain.Stats
}

// Option configures Collect.
type Option func(*collector)

// WithParallelism bounds how many runs execute at once; n < 1 means
// unbounded.
func WithParallelism(n int) Option {
	return func(c *collector) { c.parallelism = n }
}

// WithLogger attaches a structured logger for per-run diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *collector) {
		if l != nil {
			c.logger = l
		}
	}
}

type collector struct {
	parallelism int
	logger      *zap.Logger
}

// Collect executes runs independent walks of c, applying metric to every
// emitted partition. Results arrive indexed by run slot; a failing run or
// cancellation aborts the remaining runs and surfaces the first error.
func Collect(ctx context.Context, c *chain.Chain, runs int, metric MetricFunc, opts ...Option) ([]RunResult, error) {
	if runs < 1 {
		return nil, fmt.Errorf("%w: runs %d must be positive", ErrConfig, runs)
	}
	if metric == nil {
		return nil, fmt.Errorf("%w: nil metric", ErrConfig)
	}
	col := &collector{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(col)
	}

	results := make([]RunResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	if col.parallelism > 0 {
		g.SetLimit(col.parallelism)
	}
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			id := uuid.New()
			run := c.Run(ctx)
			steps := make([][]float64, 0, c.TotalSteps())
			for p, ok := run.Next(); ok; p, ok = run.Next() {
				row, err := metric(p)
				if err != nil {
					return fmt.Errorf("run %s: %w", id, err)
				}
				steps = append(steps, row)
			}
			if err := run.Err(); err != nil {
				return fmt.Errorf("run %s: %w", id, err)
			}
			results[i] = RunResult{ID: id, Seed: run.Seed(), Steps: steps, Stats: run.Stats()}
			col.logger.Debug("ensemble run finished",
				zap.String("id", id.String()),
				zap.Int64("seed", run.Seed()),
				zap.Int("accepted", run.Stats().Accepted))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SortedPercents is the classic ensemble metric: the named election's vote
// shares for party, sorted ascending, one row per plan.
func SortedPercents(election, party string) MetricFunc {
	return func(p *partition.Partition) ([]float64, error) {
		res, err := p.Election(election)
		if err != nil {
			return nil, err
		}
		return res.Percents(party)
	}
}
