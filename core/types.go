// Package core types: identifiers, delays, strengths, and sentinel errors.
package core

import "errors"

// Sentinel errors for routing-database operations.
var (
	// ErrUnknownNet indicates an operation referenced a net that is not in the netlist.
	ErrUnknownNet = errors.New("core: net not found")

	// ErrWireBound indicates a bind attempted on a wire that already carries a binding.
	ErrWireBound = errors.New("core: wire already bound")

	// ErrPipBound indicates a bind attempted on a pip that already carries a binding.
	ErrPipBound = errors.New("core: pip already bound")

	// ErrWireUnbound indicates an unbind attempted on a wire with no binding.
	ErrWireUnbound = errors.New("core: wire not bound")

	// ErrPipUnbound indicates an unbind attempted on a pip with no binding.
	ErrPipUnbound = errors.New("core: pip not bound")

	// ErrStrongBinding indicates an attempt to modify a binding above StrengthWeak.
	ErrStrongBinding = errors.New("core: binding is stronger than weak")

	// ErrInconsistent indicates the routing database and the netlist disagree.
	ErrInconsistent = errors.New("core: routing database inconsistent")
)

// Wire identifies a physical net segment on the device.
// Wires are totally ordered by their index and usable as map keys.
type Wire int32

// Pip identifies a programmable interconnect point joining two wires.
type Pip int32

// Bel identifies a placed logic site.
type Bel int32

// Sentinel identifier values.
const (
	// NoWire is the absent-wire sentinel.
	NoWire Wire = -1
	// NoPip is the absent-pip sentinel; a BoundSegment with NoPip marks a source wire.
	NoPip Pip = -1
	// NoBel marks a cell that has not been placed.
	NoBel Bel = -1
)

// NetID is an interned net name. The empty string is the no-net sentinel.
type NetID string

// NoNet is the absent-net sentinel.
const NoNet NetID = ""

// CellID is an interned cell name.
type CellID string

// PortPin is an interned port or pin name on a bel.
type PortPin string

// PortPinFromID interns a raw identifier as a PortPin.
func PortPinFromID(id string) PortPin { return PortPin(id) }

// Delay is a routing delay in device time units.
type Delay = int64

// DelayQuad describes the delay of traversing a pip.
// The router consumes Avg; Min and Max are carried for timing reports.
type DelayQuad struct {
	Min Delay
	Avg Delay
	Max Delay
}

// UniformDelay returns a DelayQuad with all three figures equal to d.
func UniformDelay(d Delay) DelayQuad {
	return DelayQuad{Min: d, Avg: d, Max: d}
}

// Strength ranks resource bindings. The router places bindings at
// StrengthWeak and only ever overrides bindings at or below StrengthWeak;
// anything stronger locks the resource against router modification.
type Strength int

const (
	// StrengthNone is the zero value; no binding carries it.
	StrengthNone Strength = iota
	// StrengthWeak marks a router-placed, router-removable binding.
	StrengthWeak
	// StrengthStrong marks a user-constrained binding.
	StrengthStrong
	// StrengthFixed marks an immovable binding.
	StrengthFixed
)
