package route

import (
	"fmt"

	"github.com/avelanda/pnroute/core"
)

// stubPip is one edge of a hand-built routing graph.
type stubPip struct {
	src, dst core.Wire
	delay    core.Delay
}

// stubDevice is a minimal core.Device over an explicit pip list, used to
// realise exact scenario graphs in tests. Its delay estimate is the
// trivial lower bound zero, so searches degrade to plain Dijkstra.
type stubDevice struct {
	pips     []stubPip
	downhill map[core.Wire][]core.Pip
	belPins  map[core.Bel]map[core.PortPin]core.Wire

	epsilon core.Delay
	penalty core.Delay
}

func newStubDevice(pips []stubPip) *stubDevice {
	d := &stubDevice{
		pips:     pips,
		downhill: make(map[core.Wire][]core.Pip),
		belPins:  make(map[core.Bel]map[core.PortPin]core.Wire),
		penalty:  5,
	}
	for i, p := range pips {
		d.downhill[p.src] = append(d.downhill[p.src], core.Pip(i))
	}

	return d
}

// mapPin exposes a wire as a named pin on a bel.
func (d *stubDevice) mapPin(b core.Bel, pin core.PortPin, w core.Wire) {
	if d.belPins[b] == nil {
		d.belPins[b] = make(map[core.PortPin]core.Wire)
	}
	d.belPins[b][pin] = w
}

func (d *stubDevice) EstimateDelay(_, _ core.Wire) core.Delay { return 0 }

func (d *stubDevice) DelayEpsilon() core.Delay { return d.epsilon }

func (d *stubDevice) RipupDelayPenalty() core.Delay { return d.penalty }

func (d *stubDevice) PipDelay(p core.Pip) core.DelayQuad {
	return core.UniformDelay(d.pips[p].delay)
}

func (d *stubDevice) PipsDownhill(w core.Wire) []core.Pip { return d.downhill[w] }

func (d *stubDevice) PipSrcWire(p core.Pip) core.Wire {
	if p < 0 || int(p) >= len(d.pips) {
		return core.NoWire
	}

	return d.pips[p].src
}

func (d *stubDevice) PipDstWire(p core.Pip) core.Wire {
	if p < 0 || int(p) >= len(d.pips) {
		return core.NoWire
	}

	return d.pips[p].dst
}

func (d *stubDevice) WireBelPin(b core.Bel, pin core.PortPin) core.Wire {
	w, ok := d.belPins[b][pin]
	if !ok {
		return core.NoWire
	}

	return w
}

func (d *stubDevice) WireName(w core.Wire) string { return fmt.Sprintf("w%d", w) }

func (d *stubDevice) BelName(b core.Bel) string { return fmt.Sprintf("b%d", b) }

// stubCell builds a placed single-purpose cell.
func stubCell(name string, b core.Bel) *core.Cell {
	return &core.Cell{Name: core.CellID(name), Type: "STUB", Bel: b}
}

// addStubNet registers a net from one driver pin to the given user pins.
func addStubNet(ctx *core.Context, name core.NetID, driver core.PortRef, users ...core.PortRef) *core.Net {
	net := core.NewNet(name)
	net.Driver = driver
	net.Users = users
	if err := ctx.AddNet(net); err != nil {
		panic(err)
	}

	return net
}
