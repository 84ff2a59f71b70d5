// Package graphio loads precinct adjacency graphs from the NetworkX JSON
// formats commonly used to cache GIS-derived adjacency (the adjacency_data
// layout with an "adjacency" array, and the node_link layout with a "links"
// array). Shapefile parsing itself is out of scope; the expectation is that
// a GIS tool has already produced the JSON.
//
// Every malformed-input failure wraps ErrLoad, so callers can treat the
// whole load path as one fatal error class:
//
//	g, err := graphio.LoadFile("PA_VTD.json")
//	if errors.Is(err, graphio.ErrLoad) { ... }
//
// Assignment extracts an initial districting plan from a node attribute
// column (for example a prior enacted plan), mapping arbitrary district
// labels onto dense partition.District values.
package graphio
