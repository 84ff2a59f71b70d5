// Package chain drives the districting Markov chain: propose, validate,
// accept or reject, emit, for a bounded number of steps.
//
// A Chain is an immutable configuration (proposal generator, ordered
// constraint list, acceptance policy, initial partition, step bound).
// Each call to Run starts a fresh, independent walk with its own
// pseudo-random stream — iterating the same Chain twice produces two
// separate ensembles, never a resumed cursor:
//
//	run := c.Run(ctx)
//	for p, ok := run.Next(); ok; p, ok = run.Next() {
//	    ...
//	}
//
// Every step emits exactly one partition. A step whose candidate fails a
// constraint, is refused by the acceptance policy, or whose proposal
// generator exhausts its retry budget emits the current partition again
// (a self-loop); the per-run Stats counters record which of those happened
// so a stalling chain is diagnosable rather than silently looping.
//
// Cancellation is checked between steps only: once Next begins a step it
// finishes it, so no partially updated state is ever observable.
package chain
