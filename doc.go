// Package pnroute is a negotiated-congestion signal router for FPGA-style
// place-and-route: given a device routing graph (wires joined by
// programmable interconnect points) and a netlist of logical nets mapped to
// placed logic sites, it computes an assignment of wires and pips to nets
// that realises every net's connectivity without any resource being claimed
// twice.
//
// The module is organized as cooperating packages:
//
//	core/    - identifiers, netlist, routing database, deterministic RNG
//	route/   - scoreboard, rip-up, single-source search, net router, outer loop
//	grid/    - synthetic grid fabric implementing core.Device
//	netfile/ - textual design format: parser and context builder
//	cmd/     - the pnroute command-line driver
//
// Quick example:
//
//	dev, _ := grid.NewDevice(8, 8)
//	b0, _ := dev.AddBel("src", 0, 0)
//	dev.AddPin(b0, "O", grid.PinOutput)
//	b1, _ := dev.AddBel("dst", 7, 7)
//	dev.AddPin(b1, "I", grid.PinInput)
//
//	ctx := core.NewContext(dev, core.WithSeed(1))
//	n := core.NewNet("n1")
//	n.Driver = core.PortRef{Cell: &core.Cell{Name: "src", Bel: b0}, Port: "O"}
//	n.Users = []core.PortRef{{Cell: &core.Cell{Name: "dst", Bel: b1}, Port: "I"}}
//	ctx.AddNet(n)
//
//	res, err := route.Route(ctx)
package pnroute
