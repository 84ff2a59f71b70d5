// Package partition models a districting plan: an Assignment of graph nodes
// to districts plus a cache of derived aggregate values ("updaters").
//
// A Partition is created from a core.Graph, an initial Assignment, and a set
// of named updaters (New), and is immutable afterwards. Transitions produce
// a fresh Partition from an old one via WithFlips or WithAssignment; the
// updater engine then recomputes only the aggregates affected by the flipped
// nodes instead of scanning the whole graph.
//
// Built-in updater kinds:
//
//	Tally     - sums a numeric node attribute per district.
//	CutEdges  - maintains the set of edges crossing district boundaries.
//	Election  - per-district vote totals for named parties, with
//	            rank-sorted vote shares via ElectionResult.Percents.
//
// The updater set is a closed enumeration: each kind carries a fixed
// incremental-update contract, checked at Partition construction. Kinds
// without an incremental path recompute from scratch on every transition.
//
// Errors:
//
//	ErrInvalidAssignment - assignment omits a node, covers an unknown node,
//	                       or references an undefined district.
//	ErrUnknownUpdater    - value requested for a name never configured.
//	ErrDuplicateUpdater  - two updaters configured under one name.
//	ErrUpdaterKind       - typed accessor used on a different updater kind.
//	ErrUnknownParty      - election accessor given an unconfigured party.
package partition
