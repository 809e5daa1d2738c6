package route_test

import (
	"fmt"

	"github.com/avelanda/pnroute/core"
	"github.com/avelanda/pnroute/grid"
	"github.com/avelanda/pnroute/route"
)

// ExampleRouter1 routes one net across a 4x4 fabric.
func ExampleRouter1() {
	dev, _ := grid.NewDevice(4, 4)

	srcBel, _ := dev.AddBel("src", 0, 0)
	_ = dev.AddPin(srcBel, "O", grid.PinOutput)
	dstBel, _ := dev.AddBel("dst", 3, 3)
	_ = dev.AddPin(dstBel, "I", grid.PinInput)

	ctx := core.NewContext(dev, core.WithSeed(1))
	net := core.NewNet("n1")
	net.Driver = core.PortRef{Cell: &core.Cell{Name: "src", Bel: srcBel}, Port: "O"}
	net.Users = []core.PortRef{{Cell: &core.Cell{Name: "dst", Bel: dstBel}, Port: "I"}}
	_ = ctx.AddNet(net)

	fmt.Println("routed:", route.Router1(ctx))
	// Output: routed: true
}
