package route

import (
	"container/heap"
	"slices"

	"github.com/avelanda/pnroute/core"
)

// queuedWire is one search-state entry: the pip that entered the wire, the
// accumulated delay, the heuristic delay still to go, and the random tag
// that breaks priority ties.
type queuedWire struct {
	wire    core.Wire
	pip     core.Pip
	delay   core.Delay
	togo    core.Delay
	randtag int
}

// wireHeap orders queued wires by delay+togo ascending; equal sums pop the
// smaller randtag first, which keeps the search deterministic for a fixed
// seed without biasing it toward any particular wire numbering.
type wireHeap []queuedWire

func (h wireHeap) Len() int { return len(h) }

func (h wireHeap) Less(i, j int) bool {
	li, lj := h[i].delay+h[i].togo, h[j].delay+h[j].togo
	if li == lj {
		return h[i].randtag < h[j].randtag
	}

	return li < lj
}

func (h wireHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *wireHeap) Push(x any) { *h = append(*h, x.(queuedWire)) }

func (h *wireHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// overtimeLimit is the post-arrival visit budget: once the destination is
// first settled at v visits, the search may spend up to (v*3)/2 visits in
// total before stopping, so cheaper paths that passed the destination early
// can still be discovered.
func overtimeLimit(v int) int { return (v * 3) / 2 }

// router carries the state of one net-routing attempt (or one point-to-point
// query). visited is rebuilt by every route call; the counters and
// rippedNets accumulate across the calls of one attempt.
type router struct {
	ctx     *core.Context
	scores  *Scoreboard
	netName core.NetID

	ripup        bool
	ripupPenalty core.Delay

	rippedNets map[core.NetID]struct{}
	visited    map[core.Wire]queuedWire

	visitCnt           int
	revisitCnt         int
	overtimeRevisitCnt int

	routedOkay bool
	maxDelay   core.Delay
	failedDest core.Wire
}

// route runs one weighted best-first search from srcWires (each with its
// initial delay) toward dst, filling r.visited with the best predecessor
// found per wire. Reaching dst is reported by dst's presence in r.visited;
// an unreached destination is not an error.
//
// In strict mode occupied wires and pips are impassable. In rip-up mode
// resources occupied by another weakly-bound net cost a congestion
// surcharge scaled by the scoreboard; resources held by this net itself, or
// whose conflict query reports no net (a binding above weak), stay
// impassable.
func (r *router) route(proxy core.MutateProxy, srcWires map[core.Wire]core.Delay, dst core.Wire) {
	dev := r.ctx.Device()
	rng := r.ctx.RNG()

	queue := make(wireHeap, 0, len(srcWires))
	r.visited = make(map[core.Wire]queuedWire, len(srcWires))

	// Seed in wire order: srcWires is a map, and every seed draws a tag
	// from the shared stream.
	seeds := make([]core.Wire, 0, len(srcWires))
	for w := range srcWires {
		seeds = append(seeds, w)
	}
	slices.Sort(seeds)
	for _, w := range seeds {
		qw := queuedWire{
			wire:    w,
			pip:     core.NoPip,
			delay:   srcWires[w],
			togo:    dev.EstimateDelay(w, dst),
			randtag: rng.Int(),
		}
		queue = append(queue, qw)
		r.visited[w] = qw
	}
	heap.Init(&queue)

	thisVisitCnt := 0
	thisVisitCntLimit := 0

	for queue.Len() > 0 && (thisVisitCntLimit == 0 || thisVisitCnt < thisVisitCntLimit) {
		qw := heap.Pop(&queue).(queuedWire)

		if thisVisitCntLimit == 0 {
			if _, settled := r.visited[dst]; settled {
				thisVisitCntLimit = overtimeLimit(thisVisitCnt)
			}
		}

		// A popped entry whose delay no longer matches the visited record
		// was superseded by a later relaxation; discard it unexpanded.
		if cur, ok := r.visited[qw.wire]; !ok || cur.delay != qw.delay {
			continue
		}

		for _, pip := range dev.PipsDownhill(qw.wire) {
			thisVisitCnt++

			nextDelay := qw.delay + dev.PipDelay(pip).Avg
			nextWire := dev.PipDstWire(pip)
			foundRipupNet := false

			if !proxy.CheckWireAvail(nextWire) {
				if !r.ripup {
					continue
				}
				conflict := proxy.GetConflictingWireNet(nextWire)
				if conflict == r.netName || conflict == core.NoNet {
					continue
				}
				nextDelay += core.Delay(r.scores.WireScore(nextWire)) * r.ripupPenalty / 8
				nextDelay += core.Delay(r.scores.NetWireScore(conflict, nextWire)) * r.ripupPenalty
				foundRipupNet = true
			}

			if !proxy.CheckPipAvail(pip) {
				if !r.ripup {
					continue
				}
				conflict := proxy.GetConflictingPipNet(pip)
				if conflict == r.netName || conflict == core.NoNet {
					continue
				}
				nextDelay += core.Delay(r.scores.PipScore(pip)) * r.ripupPenalty / 8
				nextDelay += core.Delay(r.scores.NetPipScore(conflict, pip)) * r.ripupPenalty
				foundRipupNet = true
			}

			if foundRipupNet {
				nextDelay += r.ripupPenalty
			}

			if old, ok := r.visited[nextWire]; ok {
				if old.delay <= nextDelay+dev.DelayEpsilon() {
					continue
				}
				if thisVisitCntLimit == 0 {
					r.revisitCnt++
				} else {
					r.overtimeRevisitCnt++
				}
			}

			next := queuedWire{
				wire:    nextWire,
				pip:     pip,
				delay:   nextDelay,
				togo:    dev.EstimateDelay(nextWire, dst),
				randtag: rng.Int(),
			}
			r.visited[nextWire] = next
			heap.Push(&queue, next)
		}
	}

	r.visitCnt += thisVisitCnt
}
