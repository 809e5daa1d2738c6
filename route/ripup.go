package route

import (
	"fmt"
	"slices"

	"github.com/avelanda/pnroute/core"
)

// RipupNet releases every wire and pip bound to the named net, under its
// own database proxy. Idempotent: ripping up an already-empty net is a
// no-op.
func RipupNet(ctx *core.Context, name core.NetID) error {
	proxy := ctx.RWProxy()
	defer proxy.Release()

	return ripupNet(proxy, ctx, name)
}

// ripupNet is the proxy-scoped worker shared with the net router.
//
// The net's bound segments split into pip entries and pure source wires.
// Pips are unbound first: unbinding a pip releases its destination wire
// with it, so by the time the source wires are unbound they are the only
// claims left. Failure to unbind (a stronger binding, a database
// inconsistency) is fatal.
func ripupNet(proxy core.MutateProxy, ctx *core.Context, name core.NetID) error {
	net, ok := ctx.Nets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}

	pips := make([]core.Pip, 0, len(net.Wires))
	wires := make([]core.Wire, 0, len(net.Wires))
	for w, seg := range net.Wires {
		if seg.Pip != core.NoPip {
			pips = append(pips, seg.Pip)
		} else {
			wires = append(wires, w)
		}
	}
	// Map iteration order is randomized; unbind in identifier order so the
	// operation sequence is reproducible.
	slices.Sort(pips)
	slices.Sort(wires)

	for _, p := range pips {
		if err := proxy.UnbindPip(p); err != nil {
			return fmt.Errorf("rip up net %q: %w", name, err)
		}
	}
	for _, w := range wires {
		if err := proxy.UnbindWire(w); err != nil {
			return fmt.Errorf("rip up net %q: %w", name, err)
		}
	}

	if len(net.Wires) != 0 {
		return fmt.Errorf("%w: %q holds %d wires", ErrRipupIncomplete, name, len(net.Wires))
	}

	return nil
}
