// Package constraints gates candidate partitions with pure boolean
// predicates. A Constraint inspects a partition and passes or fails it;
// failure drives rejection in the chain driver, never an error, and
// evaluation has no side effects.
//
// Built-ins:
//
//	UpperBound            - metric(p) ≤ bound.
//	WithinPercentOfIdeal  - every district population within an epsilon
//	                        fraction of the ideal; epsilon 0 demands
//	                        exact equality.
//	SingleFlipContiguous  - districts touched by the partition's flip set
//	                        remain connected, checked locally around the
//	                        flipped node rather than by scanning the
//	                        whole graph.
//
// AllValid evaluates a list left to right and short-circuits on the first
// failure.
package constraints
