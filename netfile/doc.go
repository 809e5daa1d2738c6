// Package netfile parses the textual design format consumed by the pnroute
// CLI and builds a routing context from it.
//
// Format (line-oriented, # comments):
//
//	device 8 8
//	bel src at 0 0
//	pin src O out
//	bel dst at 7 7
//	pin dst I in
//	block 3 0 -> 3 6
//	net n1 drive src.O sink dst.I
//
// One device statement sizes the grid fabric. Bels sit at fabric nodes and
// expose named pins; block statements remove a rectangle of nodes from the
// fabric; net statements connect one driving pin to any number of sinks.
//
// Parse/ParseString/ParseFile produce the syntax tree; Build validates it
// and returns a ready-to-route core.Context over a grid.Device.
package netfile
