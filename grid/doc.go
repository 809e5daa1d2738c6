// Package grid provides a synthetic rectangular routing fabric implementing
// core.Device, used by the CLI driver and the test suite.
//
// What:
//
//   - One routing wire per grid node (x, y); wire id = y*Width + x.
//   - Four directed pips per node toward its orthogonal neighbors
//     (N, E, S, W), each with the same configurable traversal delay.
//   - Bels registered at nodes. Every registered pin owns a dedicated wire
//     joined to the node by one pip (node to wire for inputs, wire to node
//     for outputs), so net terminals never sit on through-routing wires.
//     An unregistered pin resolves to NoWire.
//   - Blocked nodes: no pip enters or leaves a blocked node, which sculpts
//     detours and contention for routing scenarios.
//   - EstimateDelay is the manhattan distance times the pip delay: an exact
//     lower bound on the fabric, hence admissible. Estimates are memoized
//     in an LRU cache.
//
// Why:
//
//   - The router core is device-agnostic; this fabric is the smallest
//     backend that exhibits real routing behavior: fan-out, congestion,
//     detours, and unroutable pockets.
//
// Complexity:
//
//   - PipsDownhill: O(1 + k) for a node with k input pins (at most four
//     neighbor pips plus one pip per input pin).
//   - EstimateDelay: O(1), cached.
//   - Memory: O(W*H) for the block set plus the bel registry.
//
// Options:
//
//   - WithPipDelay(d): traversal delay per pip (default 1).
//   - WithDelayEpsilon(e): minimum resolvable delay improvement (default 0).
//   - WithRipupPenalty(p): initial congestion penalty step (default 5).
//   - WithEstimateCacheSize(n): LRU entries for estimate memoization.
//
// Errors:
//
//   - ErrBadDimensions: width or height below one.
//   - ErrOutOfBounds: a coordinate outside the fabric.
//   - ErrDuplicateBel: a bel name registered twice.
//   - ErrUnknownBel: a pin registered on a bel that does not exist.
package grid
