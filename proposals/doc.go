// Package proposals generates candidate transitions for a districting
// Markov chain. A Proposal reads the current partition and produces a flip
// set (node → new district) describing the candidate plan; it never mutates
// the partition it reads.
//
// Two generators are provided:
//
//	RandomFlip - picks a uniformly random cut edge and moves one endpoint
//	             into the other endpoint's district. Cheap, but a flip can
//	             disconnect a district, so pair it with the
//	             constraints.SingleFlipContiguous check.
//
//	ReCom      - merges two adjacent districts, draws a random spanning
//	             tree of the merged region (random edge weights + Kruskal),
//	             and cuts a tree edge whose two sides both fall within
//	             Epsilon of the population target. Both sides of the cut
//	             are connected by construction, so ReCom needs no external
//	             contiguity constraint.
//
// Both generators draw from a caller-supplied *rand.Rand so chain runs own
// independent pseudo-random streams. When a bounded retry budget is spent
// without a valid candidate, Propose returns ErrExhausted; the chain driver
// decides whether that consumes a step.
package proposals
