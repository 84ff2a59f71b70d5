package chain_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/accept"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/grid"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/proposals"
)

func latticePartition(t *testing.T) *partition.Partition {
	t.Helper()
	g, a, err := grid.Lattice(4, 6, grid.WithDistricts(2))
	require.NoError(t, err)
	p, err := partition.New(g, a,
		partition.NewTally("population", grid.PopCol),
		partition.NewCutEdges("cut_edges"))
	require.NoError(t, err)
	return p
}

func flipChain(t *testing.T, steps int, cs []constraints.Constraint, opts ...chain.Option) *chain.Chain {
	t.Helper()
	c, err := chain.New(chain.Config{
		Proposal:    proposals.NewRandomFlip(),
		Constraints: cs,
		Accept:      accept.AlwaysAccept(),
		Initial:     latticePartition(t),
		TotalSteps:  steps,
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	p := latticePartition(t)

	_, err := chain.New(chain.Config{Initial: p, TotalSteps: 5})
	assert.ErrorIs(t, err, chain.ErrConfig)

	_, err = chain.New(chain.Config{Proposal: proposals.NewRandomFlip(), TotalSteps: 5})
	assert.ErrorIs(t, err, chain.ErrConfig)

	_, err = chain.New(chain.Config{Proposal: proposals.NewRandomFlip(), Initial: p})
	assert.ErrorIs(t, err, chain.ErrConfig)
}

// A chain with AlwaysAccept and a vacuous constraint emits exactly
// TotalSteps partitions, and the length is invariant across fresh runs.
func TestRun_EmitsExactlyTotalSteps(t *testing.T) {
	pass := constraints.Func(func(*partition.Partition) bool { return true })
	c := flipChain(t, 50, []constraints.Constraint{pass}, chain.WithSeed(7))

	for iter := 0; iter < 3; iter++ {
		run := c.Run(context.Background())
		count := 0
		for _, ok := run.Next(); ok; _, ok = run.Next() {
			count++
		}
		assert.Equal(t, 50, count, "iteration %d", iter)
		assert.NoError(t, run.Err())
		assert.Equal(t, 50, run.Stats().Steps)
	}
}

// Fresh runs use independent random streams: two runs of one chain differ,
// while two chains with the same seed reproduce each other.
func TestRun_FreshStreamsPerRun(t *testing.T) {
	collect := func(c *chain.Chain) []string {
		var trace []string
		run := c.Run(context.Background())
		for p, ok := run.Next(); ok; p, ok = run.Next() {
			cut, err := p.CutEdges("cut_edges")
			require.NoError(t, err)
			trace = append(trace, cut[0].U+cut[0].V)
		}
		return trace
	}

	c1 := flipChain(t, 40, nil, chain.WithSeed(7))
	first := collect(c1)
	second := collect(c1)
	assert.NotEqual(t, first, second, "successive runs must not share a cursor or stream")

	c2 := flipChain(t, 40, nil, chain.WithSeed(7))
	assert.Equal(t, first, collect(c2), "same base seed must reproduce the session")
}

// A constraint that always fails leaves every step a self-loop on the
// initial partition.
func TestRun_RejectionSelfLoops(t *testing.T) {
	fail := constraints.Func(func(*partition.Partition) bool { return false })
	c := flipChain(t, 10, []constraints.Constraint{fail})

	run := c.Run(context.Background())
	initial := latticePartition(t)
	for p, ok := run.Next(); ok; p, ok = run.Next() {
		assert.Equal(t, initial.Assignment(), p.Assignment())
	}
	st := run.Stats()
	assert.Equal(t, 10, st.Steps)
	assert.Equal(t, 10, st.Rejected)
	assert.Zero(t, st.Accepted)
}

// A disconnecting flip is rejected by SingleFlipContiguous and the chain
// stays on the prior partition for that step.
func TestRun_ContiguityGuard(t *testing.T) {
	c := flipChain(t, 200, []constraints.Constraint{constraints.SingleFlipContiguous()},
		chain.WithSeed(3))

	run := c.Run(context.Background())
	var last *partition.Partition
	for p, ok := run.Next(); ok; p, ok = run.Next() {
		// Every emitted state keeps all districts connected.
		assert.True(t, constraints.SingleFlipContiguous().Evaluate(p))
		last = p
	}
	require.NotNil(t, last)
	st := run.Stats()
	assert.Equal(t, 200, st.Steps)
	assert.Equal(t, st.Steps, st.Accepted+st.Rejected+st.NotAccepted+st.Exhausted)
}

// An acceptance policy that refuses everything still consumes steps.
func TestRun_NotAcceptedSelfLoops(t *testing.T) {
	refuse := accept.Func(func(*rand.Rand, *partition.Partition, *partition.Partition) bool {
		return false
	})
	c, err := chain.New(chain.Config{
		Proposal:   proposals.NewRandomFlip(),
		Accept:     refuse,
		Initial:    latticePartition(t),
		TotalSteps: 8,
	})
	require.NoError(t, err)

	run := c.Run(context.Background())
	count := 0
	for _, ok := run.Next(); ok; _, ok = run.Next() {
		count++
	}
	assert.Equal(t, 8, count)
	assert.Equal(t, 8, run.Stats().NotAccepted)
}

// A proposal that can never succeed self-loops and is counted, never
// silently retried forever.
func TestRun_ExhaustionIsObservable(t *testing.T) {
	stuck := proposalFunc(func(*rand.Rand, *partition.Partition) (map[string]partition.District, error) {
		return nil, proposals.ErrExhausted
	})
	c, err := chain.New(chain.Config{
		Proposal:   stuck,
		Initial:    latticePartition(t),
		TotalSteps: 5,
	}, chain.WithRetryBudget(2))
	require.NoError(t, err)

	run := c.Run(context.Background())
	count := 0
	for _, ok := run.Next(); ok; _, ok = run.Next() {
		count++
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, 5, run.Stats().Exhausted)
	assert.NoError(t, run.Err())
}

// An internal proposal failure poisons the run and surfaces via Err.
func TestRun_InternalErrorStopsRun(t *testing.T) {
	boom := errors.New("boom")
	broken := proposalFunc(func(*rand.Rand, *partition.Partition) (map[string]partition.District, error) {
		return nil, boom
	})
	c, err := chain.New(chain.Config{
		Proposal:   broken,
		Initial:    latticePartition(t),
		TotalSteps: 5,
	})
	require.NoError(t, err)

	run := c.Run(context.Background())
	_, ok := run.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, run.Err(), boom)
}

func TestRun_Cancellation(t *testing.T) {
	c := flipChain(t, 1000, nil)

	ctx, cancel := context.WithCancel(context.Background())
	run := c.Run(ctx)

	_, ok := run.Next()
	require.True(t, ok)
	cancel()
	_, ok = run.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, run.Err(), context.Canceled)
	assert.Equal(t, 1, run.Stats().Steps)
}

func TestWalk(t *testing.T) {
	c := flipChain(t, 20, nil)

	count := 0
	err := c.Walk(context.Background(), func(*partition.Partition) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 20, count)

	stop := errors.New("stop")
	count = 0
	err = c.Walk(context.Background(), func(*partition.Partition) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

// End-to-end: a recombination chain under a population constraint keeps
// every emitted plan balanced and connected.
func TestRun_ReComPipeline(t *testing.T) {
	g, a, err := grid.Lattice(4, 8, grid.WithDistricts(4))
	require.NoError(t, err)
	p, err := partition.New(g, a,
		partition.NewTally("population", grid.PopCol),
		partition.NewCutEdges("cut_edges"))
	require.NoError(t, err)

	ideal := float64(4*8) * 10 / 4
	recom, err := proposals.NewReCom(proposals.ReComConfig{
		PopCol:      grid.PopCol,
		PopTarget:   ideal,
		Epsilon:     0.25,
		NodeRepeats: 2,
	})
	require.NoError(t, err)

	c, err := chain.New(chain.Config{
		Proposal: recom,
		Constraints: []constraints.Constraint{
			constraints.WithinPercentOfIdeal("population", ideal, 0.25),
		},
		Initial:    p,
		TotalSteps: 60,
	}, chain.WithSeed(21))
	require.NoError(t, err)

	run := c.Run(context.Background())
	count := 0
	for q, ok := run.Next(); ok; q, ok = run.Next() {
		count++
		pops, err := q.Tally("population")
		require.NoError(t, err)
		for d, pop := range pops {
			assert.GreaterOrEqual(t, pop, ideal*0.75, "district %d", d)
			assert.LessOrEqual(t, pop, ideal*1.25, "district %d", d)
		}
		assert.True(t, constraints.SingleFlipContiguous().Evaluate(q))
	}
	assert.Equal(t, 60, count)
	assert.NoError(t, run.Err())
	assert.Positive(t, run.Stats().Accepted, "a recom chain on this lattice must move")
}

// proposalFunc adapts a function to proposals.Proposal for test doubles.
type proposalFunc func(*rand.Rand, *partition.Partition) (map[string]partition.District, error)

func (f proposalFunc) Propose(rng *rand.Rand, p *partition.Partition) (map[string]partition.District, error) {
	return f(rng, p)
}
