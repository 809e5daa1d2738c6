package grid

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/avelanda/pnroute/core"
)

// pipsPerNode is the number of neighbor pip slots per node, one per
// direction.
const pipsPerNode = 4

// Directions, in pip-slot order. dx/dy give the neighbor offset per slot.
var (
	dx = [pipsPerNode]int{0, 1, 0, -1}
	dy = [pipsPerNode]int{-1, 0, 1, 0}
)

// Dir is the direction of a bel pin relative to the fabric.
type Dir int

const (
	// PinInput pins sink a signal: the fabric routes onto them.
	PinInput Dir = iota
	// PinOutput pins drive a signal into the fabric.
	PinOutput
)

// bel is one registered logic site.
type bel struct {
	name string
	x, y int
	pins map[core.PortPin]int // pin name -> pin index
}

// pin is one registered bel pin. Each pin owns a dedicated wire, joined to
// its node by a single pip, so terminals never sit on through-routing
// wires.
type pin struct {
	name core.PortPin
	dir  Dir
	bel  int
}

// wirePair keys the estimate cache.
type wirePair struct {
	src, dst core.Wire
}

// Device is a rectangular routing fabric. It satisfies core.Device.
//
// Wire numbering: node wires occupy [0, Width*Height); pin wires follow in
// registration order. Pip numbering: neighbor pips occupy
// [0, Width*Height*4) as node*4+direction; pin pips follow, one per pin.
//
// The routing graph is fixed once routing starts; Block, AddBel, and
// AddPin are construction-time operations.
type Device struct {
	width, height int
	opts          Options

	blocked map[core.Wire]struct{}
	bels    []*bel
	pins    []pin

	// nodeInPins lists, per node wire, the input pins reachable from it.
	nodeInPins map[core.Wire][]int

	estimates *lru.Cache[wirePair, core.Delay]
}

// NewDevice builds a width x height fabric.
func NewDevice(width, height int, opts ...Option) (*Device, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	estimates, err := lru.New[wirePair, core.Delay](o.EstimateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("grid: estimate cache: %w", err)
	}

	return &Device{
		width:      width,
		height:     height,
		opts:       o,
		blocked:    make(map[core.Wire]struct{}),
		nodeInPins: make(map[core.Wire][]int),
		estimates:  estimates,
	}, nil
}

// Width reports the fabric width in nodes.
func (d *Device) Width() int { return d.width }

// Height reports the fabric height in nodes.
func (d *Device) Height() int { return d.height }

// nodes is the number of node wires.
func (d *Device) nodes() int { return d.width * d.height }

// NodeWire resolves a coordinate to its node wire.
func (d *Device) NodeWire(x, y int) (core.Wire, error) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return core.NoWire, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}

	return core.Wire(y*d.width + x), nil
}

// wireCoord maps any wire to fabric coordinates; pin wires report their
// bel's node. ok is false for wires outside the fabric.
func (d *Device) wireCoord(w core.Wire) (x, y int, ok bool) {
	if w < 0 {
		return 0, 0, false
	}
	if int(w) < d.nodes() {
		return int(w) % d.width, int(w) / d.width, true
	}
	pinIdx := int(w) - d.nodes()
	if pinIdx >= len(d.pins) {
		return 0, 0, false
	}
	site := d.bels[d.pins[pinIdx].bel]

	return site.x, site.y, true
}

// Block removes a node from the fabric: no neighbor pip enters or leaves
// it, and its pins become unreachable.
func (d *Device) Block(x, y int) error {
	w, err := d.NodeWire(x, y)
	if err != nil {
		return err
	}
	d.blocked[w] = struct{}{}

	return nil
}

// AddBel registers a logic site at a node and returns its handle.
func (d *Device) AddBel(name string, x, y int) (core.Bel, error) {
	if _, err := d.NodeWire(x, y); err != nil {
		return core.NoBel, err
	}
	for _, b := range d.bels {
		if b.name == name {
			return core.NoBel, fmt.Errorf("%w: %q", ErrDuplicateBel, name)
		}
	}

	d.bels = append(d.bels, &bel{
		name: name,
		x:    x,
		y:    y,
		pins: make(map[core.PortPin]int),
	})

	return core.Bel(len(d.bels) - 1), nil
}

// AddPin registers a named pin on a bel, allocating its dedicated wire and
// the pip joining it to the bel's node. Only registered pins resolve
// through WireBelPin.
func (d *Device) AddPin(b core.Bel, name core.PortPin, dir Dir) error {
	if b < 0 || int(b) >= len(d.bels) {
		return fmt.Errorf("%w: %d", ErrUnknownBel, b)
	}
	site := d.bels[b]
	if _, dup := site.pins[name]; dup {
		return fmt.Errorf("%w: pin %q on %q", ErrDuplicatePin, name, site.name)
	}

	pinIdx := len(d.pins)
	d.pins = append(d.pins, pin{name: name, dir: dir, bel: int(b)})
	site.pins[name] = pinIdx

	if dir == PinInput {
		node, _ := d.NodeWire(site.x, site.y)
		d.nodeInPins[node] = append(d.nodeInPins[node], pinIdx)
	}

	return nil
}

// pinWire is the dedicated wire of a registered pin.
func (d *Device) pinWire(pinIdx int) core.Wire {
	return core.Wire(d.nodes() + pinIdx)
}

// pinPip is the pip joining a registered pin to its node.
func (d *Device) pinPip(pinIdx int) core.Pip {
	return core.Pip(d.nodes()*pipsPerNode + pinIdx)
}

// EstimateDelay lower-bounds the routing delay by the manhattan distance
// between the wires' nodes, times the pip delay. Pin hops only add to the
// true delay, so the bound stays admissible.
func (d *Device) EstimateDelay(src, dst core.Wire) core.Delay {
	if src == dst {
		return 0
	}
	key := wirePair{src: src, dst: dst}
	if est, ok := d.estimates.Get(key); ok {
		return est
	}

	sx, sy, ok := d.wireCoord(src)
	if !ok {
		return 0
	}
	tx, ty, ok := d.wireCoord(dst)
	if !ok {
		return 0
	}

	est := core.Delay(abs(sx-tx)+abs(sy-ty)) * d.opts.PipDelay
	d.estimates.Add(key, est)

	return est
}

// DelayEpsilon reports the minimum resolvable delay improvement.
func (d *Device) DelayEpsilon() core.Delay { return d.opts.DelayEpsilon }

// RipupDelayPenalty reports the congestion penalty step.
func (d *Device) RipupDelayPenalty() core.Delay { return d.opts.RipupPenalty }

// PipDelay reports the uniform traversal delay of any pip.
func (d *Device) PipDelay(core.Pip) core.DelayQuad {
	return core.UniformDelay(d.opts.PipDelay)
}

// PipsDownhill enumerates the pips leaving a wire: for a node wire, the
// neighbor pips (N, E, S, W order) followed by the pips onto its input
// pins; for an output pin wire, the single pip onto its node. Blocked
// endpoints suppress their pips.
func (d *Device) PipsDownhill(w core.Wire) []core.Pip {
	if w < 0 {
		return nil
	}

	if int(w) >= d.nodes() {
		pinIdx := int(w) - d.nodes()
		if pinIdx >= len(d.pins) || d.pins[pinIdx].dir != PinOutput {
			return nil
		}
		site := d.bels[d.pins[pinIdx].bel]
		node, _ := d.NodeWire(site.x, site.y)
		if _, blocked := d.blocked[node]; blocked {
			return nil
		}

		return []core.Pip{d.pinPip(pinIdx)}
	}

	if _, blocked := d.blocked[w]; blocked {
		return nil
	}
	x, y, _ := d.wireCoord(w)

	pips := make([]core.Pip, 0, pipsPerNode+len(d.nodeInPins[w]))
	for dir := 0; dir < pipsPerNode; dir++ {
		nx, ny := x+dx[dir], y+dy[dir]
		if nx < 0 || nx >= d.width || ny < 0 || ny >= d.height {
			continue
		}
		dst := core.Wire(ny*d.width + nx)
		if _, blocked := d.blocked[dst]; blocked {
			continue
		}
		pips = append(pips, core.Pip(int(w)*pipsPerNode+dir))
	}
	for _, pinIdx := range d.nodeInPins[w] {
		pips = append(pips, d.pinPip(pinIdx))
	}

	return pips
}

// PipSrcWire reports the wire a pip departs from.
func (d *Device) PipSrcWire(p core.Pip) core.Wire {
	if p < 0 {
		return core.NoWire
	}
	if int(p) < d.nodes()*pipsPerNode {
		return core.Wire(int(p) / pipsPerNode)
	}
	pinIdx := int(p) - d.nodes()*pipsPerNode
	if pinIdx >= len(d.pins) {
		return core.NoWire
	}
	site := d.bels[d.pins[pinIdx].bel]
	node, _ := d.NodeWire(site.x, site.y)
	if d.pins[pinIdx].dir == PinOutput {
		return d.pinWire(pinIdx)
	}

	return node
}

// PipDstWire reports the wire a pip arrives at.
func (d *Device) PipDstWire(p core.Pip) core.Wire {
	if p < 0 {
		return core.NoWire
	}
	if int(p) < d.nodes()*pipsPerNode {
		src := core.Wire(int(p) / pipsPerNode)
		x, y, _ := d.wireCoord(src)
		dir := int(p) % pipsPerNode
		nx, ny := x+dx[dir], y+dy[dir]
		if nx < 0 || nx >= d.width || ny < 0 || ny >= d.height {
			return core.NoWire
		}

		return core.Wire(ny*d.width + nx)
	}
	pinIdx := int(p) - d.nodes()*pipsPerNode
	if pinIdx >= len(d.pins) {
		return core.NoWire
	}
	site := d.bels[d.pins[pinIdx].bel]
	node, _ := d.NodeWire(site.x, site.y)
	if d.pins[pinIdx].dir == PinOutput {
		return node
	}

	return d.pinWire(pinIdx)
}

// WireBelPin resolves a registered pin on a bel to the pin's dedicated
// wire.
func (d *Device) WireBelPin(b core.Bel, name core.PortPin) core.Wire {
	if b < 0 || int(b) >= len(d.bels) {
		return core.NoWire
	}
	pinIdx, ok := d.bels[b].pins[name]
	if !ok {
		return core.NoWire
	}

	return d.pinWire(pinIdx)
}

// WireName renders a node wire as X<x>Y<y> and a pin wire as BEL.PIN.
func (d *Device) WireName(w core.Wire) string {
	if w < 0 {
		return "<none>"
	}
	if int(w) < d.nodes() {
		x, y, _ := d.wireCoord(w)

		return fmt.Sprintf("X%dY%d", x, y)
	}
	pinIdx := int(w) - d.nodes()
	if pinIdx >= len(d.pins) {
		return "<none>"
	}

	return fmt.Sprintf("%s.%s", d.bels[d.pins[pinIdx].bel].name, d.pins[pinIdx].name)
}

// BelName renders a bel's registered name.
func (d *Device) BelName(b core.Bel) string {
	if b < 0 || int(b) >= len(d.bels) {
		return "<none>"
	}

	return d.bels[b].name
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
