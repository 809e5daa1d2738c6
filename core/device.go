package core

// Device is the read-only routing-graph and delay-model contract a device
// backend satisfies. All methods are pure queries; the mutable routing
// database lives in the Context, not in the Device.
//
// EstimateDelay should be an admissible lower bound for best search
// behavior; the router tolerates mild inadmissibility through its overtime
// visit budget and the rip-up loop.
type Device interface {
	// EstimateDelay lower-bounds the routing delay between two wires.
	EstimateDelay(src, dst Wire) Delay

	// DelayEpsilon is the minimum resolvable delay improvement; a candidate
	// path must beat the incumbent by more than this to replace it.
	DelayEpsilon() Delay

	// RipupDelayPenalty is the initial congestion penalty and the step by
	// which the outer loop escalates it.
	RipupDelayPenalty() Delay

	// PipDelay reports the delay of traversing a pip.
	PipDelay(p Pip) DelayQuad

	// PipsDownhill enumerates the pips whose source is the given wire.
	PipsDownhill(w Wire) []Pip

	// PipSrcWire reports the wire a pip departs from.
	PipSrcWire(p Pip) Wire

	// PipDstWire reports the wire a pip arrives at.
	PipDstWire(p Pip) Wire

	// WireBelPin resolves a named pin on a bel to its wire, or NoWire when
	// the pin has no mapping.
	WireBelPin(b Bel, pin PortPin) Wire

	// WireName renders a wire for logging.
	WireName(w Wire) string

	// BelName renders a bel for logging.
	BelName(b Bel) string
}
