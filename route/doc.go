// Package route implements a negotiated-congestion signal router with
// rip-up and reroute over a core.Device routing graph.
//
// What
//
//   - Scoreboard: monotone per-wire, per-pip, and per-(net,resource)
//     congestion history counters.
//   - RipupNet: release every wire and pip a net has claimed.
//   - A weighted best-first single-source search from a set of source wires
//     to one destination wire, producing a predecessor map; in rip-up mode
//     it may pass through occupied resources at a history-scaled penalty.
//   - A per-net router that drives the search for every user of a net,
//     commits the found paths destination-to-source, and evicts the
//     conflicting nets it crossed.
//   - Route: the outer loop scheduling strict and rip-up passes across
//     iterations with an escalating congestion penalty.
//
// Why
//
//	Early iterations let every net take its cheapest path and collide;
//	each collision bumps the loser's history score, so later iterations,
//	with a larger penalty, steer contested nets toward resources nobody
//	else has fought over. Either the queue drains (success) or the
//	iteration budget runs out.
//
// Determinism
//
//	Queue ties break on random tags, and queues are sorted before being
//	shuffled, all off the context's single stream: a fixed seed fixes the
//	final bindings and the checksum.
//
// Complexity (per single-source search, W = wires, P = pips)
//
//   - Time:  O((W + P) log W) in the settled region, cut short by the
//     overtime visit budget once the destination is reached.
//   - Space: O(W) for the predecessor map plus O(P) heap entries worst
//     case under lazy decrease-key.
//
// Usage
//
//	ctx := core.NewContext(dev, core.WithSeed(1))
//	// ... populate ctx.Nets ...
//	res, err := route.Route(ctx)
//	if err != nil {
//	    // ErrGaveUp after the iteration budget, or a fatal error:
//	    // unplaced cell, unmapped pin, net impossible even with rip-up.
//	}
//	fmt.Printf("routed in %d iterations, checksum 0x%08x\n", res.Iterations, res.Checksum)
package route
