// Package core defines the immutable precinct adjacency Graph that every
// other package in redistrict consumes.
//
// A Graph is assembled through a Builder (AddNode / AddEdge) and frozen by
// Build(). After Build the Graph never changes: all accessors return copies
// or read-only views, node and edge orderings are deterministic (sorted by
// ID), and concurrent readers need no synchronization.
//
// Each node carries an attribute record of numeric and categorical fields
// (population counts, vote totals, district labels from a prior plan).
// Numeric fields are read with Float, categorical fields with Label.
//
// Errors:
//
//	ErrEmptyNodeID   - node ID is the empty string.
//	ErrDuplicateNode - node added twice.
//	ErrNodeNotFound  - operation referenced an unknown node.
//	ErrSelfLoop      - edge with identical endpoints.
//	ErrDuplicateEdge - edge added twice (in either orientation).
//	ErrAttrNotFound  - attribute key absent from a node's record.
//	ErrAttrType      - attribute present but of the wrong kind.
package core
