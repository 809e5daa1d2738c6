package core

import (
	"fmt"
	"hash/crc32"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithSeed selects the seed for the context's random stream.
func WithSeed(seed uint64) ContextOption {
	return func(c *Context) { c.rng = NewRNG(seed) }
}

// WithLogger installs a logger; a nil logger is ignored.
func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// Context ties a Device to a netlist and owns the shared routing database,
// the deterministic random stream, and the logger.
//
// The netlist topology (Nets, cells, users) is fixed while routing runs;
// only Net.Wires and the binding tables mutate, and only under a
// MutateProxy.
type Context struct {
	// Nets is the netlist, keyed by net name.
	Nets map[NetID]*Net

	dev Device
	rng *RNG
	log *zap.Logger

	mu       sync.RWMutex // guards wireNets, pipNets, and every Net.Wires
	wireNets map[Wire]binding
	pipNets  map[Pip]binding
}

// NewContext returns an empty context over the given device.
func NewContext(dev Device, opts ...ContextOption) *Context {
	c := &Context{
		Nets:     make(map[NetID]*Net),
		dev:      dev,
		rng:      NewRNG(0),
		log:      zap.NewNop(),
		wireNets: make(map[Wire]binding),
		pipNets:  make(map[Pip]binding),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Device returns the routing-graph backend.
func (c *Context) Device() Device { return c.dev }

// RNG returns the context's single random stream.
func (c *Context) RNG() *RNG { return c.rng }

// Logger returns the context's logger (never nil).
func (c *Context) Logger() *zap.Logger { return c.log }

// AddNet registers a net in the netlist.
func (c *Context) AddNet(n *Net) error {
	if _, dup := c.Nets[n.Name]; dup {
		return fmt.Errorf("core: net %q already defined", n.Name)
	}
	if n.Wires == nil {
		n.Wires = make(map[Wire]BoundSegment)
	}
	c.Nets[n.Name] = n

	return nil
}

// RProxy acquires shared read access to the routing database.
func (c *Context) RProxy() ReadProxy {
	c.mu.RLock()

	return ReadProxy{dbView{c}}
}

// RWProxy acquires exclusive access to the routing database.
func (c *Context) RWProxy() MutateProxy {
	c.mu.Lock()

	return MutateProxy{dbView{c}}
}

// Checksum digests the current wire and pip bindings into a CRC32. Bindings
// are folded in ascending identifier order, so equal databases always hash
// equal regardless of map iteration order.
func (c *Context) Checksum() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := crc32.NewIEEE()
	buf := make([]byte, 0, 64)

	wires := make([]Wire, 0, len(c.wireNets))
	for w := range c.wireNets {
		wires = append(wires, w)
	}
	slices.Sort(wires)
	for _, w := range wires {
		b := c.wireNets[w]
		buf = fmt.Appendf(buf[:0], "w%d=%s/%d;", w, b.net, b.strength)
		h.Write(buf)
	}

	pips := make([]Pip, 0, len(c.pipNets))
	for p := range c.pipNets {
		pips = append(pips, p)
	}
	slices.Sort(pips)
	for _, p := range pips {
		b := c.pipNets[p]
		buf = fmt.Appendf(buf[:0], "p%d=%s/%d;", p, b.net, b.strength)
		h.Write(buf)
	}

	return h.Sum32()
}

// Check validates the routing-database invariants:
//
//  1. every Net.Wires entry is mirrored by a wire binding to that net, and
//     its entering pip (when present) by a pip binding to the same net;
//  2. every wire and pip binding is mirrored by a Net.Wires entry.
//
// Disjointness needs no check: the binding tables are keyed by resource, so
// a wire or pip can never carry two owners.
func (c *Context) Check() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	boundWires := 0
	boundPips := 0
	for name, net := range c.Nets {
		for w, seg := range net.Wires {
			b, bound := c.wireNets[w]
			if !bound || b.net != name {
				return fmt.Errorf("%w: net %q claims wire %s, database disagrees",
					ErrInconsistent, name, c.dev.WireName(w))
			}
			boundWires++
			if seg.Pip == NoPip {
				continue
			}
			pb, pipBound := c.pipNets[seg.Pip]
			if !pipBound || pb.net != name {
				return fmt.Errorf("%w: net %q claims pip into wire %s, database disagrees",
					ErrInconsistent, name, c.dev.WireName(w))
			}
			if c.dev.PipDstWire(seg.Pip) != w {
				return fmt.Errorf("%w: net %q wire %s entered by a pip with another destination",
					ErrInconsistent, name, c.dev.WireName(w))
			}
			boundPips++
		}
	}
	if boundWires != len(c.wireNets) {
		return fmt.Errorf("%w: %d wire bindings, %d net wire claims",
			ErrInconsistent, len(c.wireNets), boundWires)
	}
	if boundPips != len(c.pipNets) {
		return fmt.Errorf("%w: %d pip bindings, %d net pip claims",
			ErrInconsistent, len(c.pipNets), boundPips)
	}

	return nil
}
