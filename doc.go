// Package redistrict is an in-memory Markov-chain sampler over districting
// plans: load a precinct adjacency graph, partition it into districts, and
// walk the space of plans with flip or tree-recombination proposals under
// population and contiguity constraints.
//
// The pipeline, package by package:
//
//	core        — immutable precinct adjacency Graph with attribute records
//	graphio     — NetworkX JSON adjacency loader and plan extraction
//	grid        — synthetic precinct lattices for tests and experiments
//	partition   — Assignment, Partition, and incremental updaters
//	              (population Tally, CutEdges, Election vote shares)
//	proposals   — RandomFlip and ReCom candidate generators
//	constraints — UpperBound, WithinPercentOfIdeal, SingleFlipContiguous
//	accept      — AlwaysAccept and Metropolis acceptance policies
//	chain       — the chain driver: propose → validate → accept → emit
//	ensemble    — parallel independent runs gathering per-plan metrics
//	config      — YAML run configuration
//
// A minimal session:
//
//	g, _ := graphio.LoadFile("PA_VTD.json")
//	a, _, _ := graphio.Assignment(g, "2011_PLA_1")
//	p, _ := partition.New(g, a,
//	    partition.NewTally("population", "TOT_POP"),
//	    partition.NewCutEdges("cut_edges"))
//	c, _ := chain.New(chain.Config{
//	    Proposal:    proposals.NewRandomFlip(),
//	    Constraints: []constraints.Constraint{constraints.SingleFlipContiguous()},
//	    Initial:     p,
//	    TotalSteps:  1000,
//	})
//	c.Walk(ctx, func(p *partition.Partition) error { ... })
//
// Partitions are immutable and the graph is read-only after load, so
// independent chain runs parallelize with no shared mutable state; see the
// ensemble package.
package redistrict
