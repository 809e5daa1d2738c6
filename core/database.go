package core

import "fmt"

// binding is one routing-database entry: the owning net and its strength.
type binding struct {
	net      NetID
	strength Strength
}

// dbView implements the read-only database queries. It performs no locking
// itself; the proxy that embeds it holds the appropriate lock for its whole
// lifetime, which is what lets MutateProxy reuse the same queries while
// holding the write lock.
type dbView struct {
	c *Context
}

// CheckWireAvail reports whether the wire carries no binding at all.
func (v dbView) CheckWireAvail(w Wire) bool {
	_, bound := v.c.wireNets[w]

	return !bound
}

// CheckPipAvail reports whether the pip carries no binding at all.
func (v dbView) CheckPipAvail(p Pip) bool {
	_, bound := v.c.pipNets[p]

	return !bound
}

// GetConflictingWireNet returns the net bound to the wire when that binding
// can be contested (strength at most StrengthWeak). Stronger bindings hide
// their owner: the result is NoNet, which callers treat as an immovable
// obstruction.
func (v dbView) GetConflictingWireNet(w Wire) NetID {
	b, bound := v.c.wireNets[w]
	if !bound || b.strength > StrengthWeak {
		return NoNet
	}

	return b.net
}

// GetConflictingPipNet is the pip analogue of GetConflictingWireNet.
func (v dbView) GetConflictingPipNet(p Pip) NetID {
	b, bound := v.c.pipNets[p]
	if !bound || b.strength > StrengthWeak {
		return NoNet
	}

	return b.net
}

// ReadProxy grants shared read access to the routing database. Multiple
// ReadProxies may be live at once; none may overlap a MutateProxy.
type ReadProxy struct {
	dbView
}

// Release returns the proxy's shared lock.
func (p ReadProxy) Release() {
	p.c.mu.RUnlock()
}

// MutateProxy grants exclusive access to the routing database. The database
// invariants hold whenever no MutateProxy is live; a whole net-routing
// attempt runs under one proxy so partially committed paths are never
// observable from outside.
type MutateProxy struct {
	dbView
}

// Release returns the proxy's exclusive lock.
func (p MutateProxy) Release() {
	p.c.mu.Unlock()
}

// BindWire claims a free wire for a net as a source wire (no entering pip).
func (p MutateProxy) BindWire(w Wire, name NetID, strength Strength) error {
	net, ok := p.c.Nets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}
	if b, bound := p.c.wireNets[w]; bound {
		return fmt.Errorf("%w: wire %s held by %q", ErrWireBound, p.c.dev.WireName(w), b.net)
	}

	p.c.wireNets[w] = binding{net: name, strength: strength}
	net.Wires[w] = BoundSegment{Pip: NoPip, Strength: strength}

	return nil
}

// BindPip claims a free pip for a net. The pip's destination wire is claimed
// together with it, recording the pip as the entry into that wire.
func (p MutateProxy) BindPip(pp Pip, name NetID, strength Strength) error {
	net, ok := p.c.Nets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}
	if b, bound := p.c.pipNets[pp]; bound {
		return fmt.Errorf("%w: pip held by %q", ErrPipBound, b.net)
	}
	dst := p.c.dev.PipDstWire(pp)
	if b, bound := p.c.wireNets[dst]; bound {
		return fmt.Errorf("%w: wire %s held by %q", ErrWireBound, p.c.dev.WireName(dst), b.net)
	}

	p.c.pipNets[pp] = binding{net: name, strength: strength}
	p.c.wireNets[dst] = binding{net: name, strength: strength}
	net.Wires[dst] = BoundSegment{Pip: pp, Strength: strength}

	return nil
}

// UnbindWire releases a wire. When the wire was entered through a pip, that
// pip is released with it. Bindings above StrengthWeak refuse to move.
func (p MutateProxy) UnbindWire(w Wire) error {
	b, bound := p.c.wireNets[w]
	if !bound {
		return fmt.Errorf("%w: wire %s", ErrWireUnbound, p.c.dev.WireName(w))
	}
	if b.strength > StrengthWeak {
		return fmt.Errorf("%w: wire %s held by %q", ErrStrongBinding, p.c.dev.WireName(w), b.net)
	}
	net, ok := p.c.Nets[b.net]
	if !ok {
		return fmt.Errorf("%w: wire %s bound to unknown net %q", ErrInconsistent, p.c.dev.WireName(w), b.net)
	}

	if seg := net.Wires[w]; seg.Pip != NoPip {
		delete(p.c.pipNets, seg.Pip)
	}
	delete(p.c.wireNets, w)
	delete(net.Wires, w)

	return nil
}

// UnbindPip releases a pip and the destination wire it claimed.
func (p MutateProxy) UnbindPip(pp Pip) error {
	b, bound := p.c.pipNets[pp]
	if !bound {
		return fmt.Errorf("%w", ErrPipUnbound)
	}
	if b.strength > StrengthWeak {
		return fmt.Errorf("%w: pip held by %q", ErrStrongBinding, b.net)
	}
	net, ok := p.c.Nets[b.net]
	if !ok {
		return fmt.Errorf("%w: pip bound to unknown net %q", ErrInconsistent, b.net)
	}

	dst := p.c.dev.PipDstWire(pp)
	delete(p.c.pipNets, pp)
	delete(p.c.wireNets, dst)
	delete(net.Wires, dst)

	return nil
}
