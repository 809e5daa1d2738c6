package route

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/avelanda/pnroute/core"
)

// newNetRouter prepares a router for one attempt at the named net.
func newNetRouter(ctx *core.Context, scores *Scoreboard, name core.NetID, ripup bool, penalty core.Delay) *router {
	return &router{
		ctx:          ctx,
		scores:       scores,
		netName:      name,
		ripup:        ripup,
		ripupPenalty: penalty,
		rippedNets:   make(map[core.NetID]struct{}),
		failedDest:   core.NoWire,
	}
}

// resolvePortWire maps one net endpoint to its wire: bel of the placed
// cell, logical port renamed through the cell pin map, then the device's
// bel-pin lookup. Unplaced cells and unmapped pins are configuration
// errors, not routing failures.
func resolvePortWire(dev core.Device, ref core.PortRef) (core.Wire, error) {
	if ref.Cell.Bel == core.NoBel {
		return core.NoWire, fmt.Errorf("%w: cell %q (%s)", ErrUnplacedCell, ref.Cell.Name, ref.Cell.Type)
	}
	pin := ref.Cell.PhysicalPin(ref.Port)
	wire := dev.WireBelPin(ref.Cell.Bel, pin)
	if wire == core.NoWire {
		return core.NoWire, fmt.Errorf("%w: port %q (pin %q) on cell %q (bel %s)",
			ErrUnmappedPort, ref.Port, pin, ref.Cell.Name, dev.BelName(ref.Cell.Bel))
	}

	return wire, nil
}

// routeNet attempts to realise the full net.
//
// On success the routing database holds the committed pips bound weak to
// the net, the net's wire map is populated, and routedOkay is true. On a
// strict-mode miss the net is fully ripped up, failedDest names the first
// unreachable destination, and routedOkay stays false with a nil error. A
// rip-up-mode miss, an unplaced cell, or an unmapped pin is a fatal error.
//
// The whole attempt runs under a single mutate proxy, so no partially
// committed path is ever observable.
func (r *router) routeNet(log *zap.Logger) error {
	net, ok := r.ctx.Nets[r.netName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, r.netName)
	}
	if net.Driver.Cell == nil {
		return fmt.Errorf("%w: %q", ErrNoDriver, r.netName)
	}

	dev := r.ctx.Device()

	srcWire, err := resolvePortWire(dev, net.Driver)
	if err != nil {
		return fmt.Errorf("net %q driver: %w", r.netName, err)
	}

	log.Debug("routing net",
		zap.String("net", string(r.netName)),
		zap.String("srcWire", dev.WireName(srcWire)),
		zap.Int("users", len(net.Users)))

	srcWires := map[core.Wire]core.Delay{srcWire: 0}

	proxy := r.ctx.RWProxy()
	defer proxy.Release()

	if err := ripupNet(proxy, r.ctx, r.netName); err != nil {
		return err
	}
	if err := proxy.BindWire(srcWire, r.netName, core.StrengthWeak); err != nil {
		return err
	}

	users := slices.Clone(net.Users)
	core.Shuffle(r.ctx.RNG(), users)

	for _, user := range users {
		dstWire, err := resolvePortWire(dev, user)
		if err != nil {
			return fmt.Errorf("net %q user: %w", r.netName, err)
		}

		r.route(proxy, srcWires, dstWire)

		if _, reached := r.visited[dstWire]; !reached {
			log.Debug("failed to route",
				zap.String("net", string(r.netName)),
				zap.String("from", dev.WireName(srcWire)),
				zap.String("to", dev.WireName(dstWire)))
			if err := ripupNet(proxy, r.ctx, r.netName); err != nil {
				return err
			}
			r.failedDest = dstWire
			if r.ripup {
				return fmt.Errorf("%w: %q toward %s", ErrUnroutable, r.netName, dev.WireName(dstWire))
			}

			return nil
		}

		r.maxDelay = max(r.maxDelay, r.visited[dstWire].delay)

		if err := r.commitPath(proxy, srcWires, dstWire); err != nil {
			return err
		}
	}

	r.routedOkay = true

	return nil
}

// commitPath walks from the destination back along the predecessor chain,
// evicting conflicting weak bindings and committing every traversed pip to
// this net, until it rejoins a wire the net already owns. Each committed
// wire enters srcWires at its accumulated delay, so later users of the net
// can branch off it at no extra cost.
func (r *router) commitPath(proxy core.MutateProxy, srcWires map[core.Wire]core.Delay, dstWire core.Wire) error {
	dev := r.ctx.Device()
	cursor := dstWire

	for {
		if _, bound := srcWires[cursor]; bound {
			return nil
		}

		if conflict := proxy.GetConflictingWireNet(cursor); conflict != core.NoNet {
			if !r.ripup || conflict == r.netName {
				return fmt.Errorf("%w: wire %s held by %q", ErrUnexpectedConflict, dev.WireName(cursor), conflict)
			}
			if err := proxy.UnbindWire(cursor); err != nil {
				return err
			}
			// The conflicting net may still reach this wire through a pip
			// of its own; evict it entirely in that case.
			if !proxy.CheckWireAvail(cursor) {
				if err := ripupNet(proxy, r.ctx, conflict); err != nil {
					return err
				}
			}
			r.rippedNets[conflict] = struct{}{}
			r.scores.IncWireScore(cursor)
			r.scores.IncNetWireScore(r.netName, cursor)
			r.scores.IncNetWireScore(conflict, cursor)
		}

		pip := r.visited[cursor].pip

		if conflict := proxy.GetConflictingPipNet(pip); conflict != core.NoNet {
			if !r.ripup || conflict == r.netName {
				return fmt.Errorf("%w: pip into %s held by %q", ErrUnexpectedConflict, dev.WireName(cursor), conflict)
			}
			if err := proxy.UnbindPip(pip); err != nil {
				return err
			}
			if !proxy.CheckPipAvail(pip) {
				if err := ripupNet(proxy, r.ctx, conflict); err != nil {
					return err
				}
			}
			r.rippedNets[conflict] = struct{}{}
			r.scores.IncPipScore(pip)
			r.scores.IncNetPipScore(r.netName, pip)
			r.scores.IncNetPipScore(conflict, pip)
		}

		if err := proxy.BindPip(pip, r.netName, core.StrengthWeak); err != nil {
			return err
		}
		srcWires[cursor] = r.visited[cursor].delay
		cursor = dev.PipSrcWire(pip)
	}
}
