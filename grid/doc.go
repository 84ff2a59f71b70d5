// Package grid generates synthetic rectangular precinct lattices for tests
// and examples: connected rows×cols graphs whose nodes carry population and
// two-party vote attributes, together with a vertical-stripe initial
// assignment into k districts.
//
// A 3×6 lattice striped into 3 districts:
//
//	0 0 | 1 1 | 2 2
//	0 0 | 1 1 | 2 2
//	0 0 | 1 1 | 2 2
//
// Lattices are deliberately boring: uniform population, smoothly varying
// vote shares, equal-width stripes. That makes ideal populations and cut
// edge counts easy to predict in assertions.
package grid
