package route

import (
	"go.uber.org/zap"

	"github.com/avelanda/pnroute/core"
)

// Route routes every net with a placed driver and an empty wire map, or
// gives up after the iteration budget.
//
// Each iteration runs a strict pass over the queue (no net may touch an
// occupied resource), collects the failures, and re-routes them in rip-up
// mode at the current congestion penalty; every net evicted during the
// rip-up pass re-enters the queue for the next iteration. The penalty grows
// by the device's configured step after iterations 8, 16, 32, 64 and 128.
//
// The returned error is nil on full success, ErrGaveUp when the budget ran
// out with nets still queued, and the underlying fatal error otherwise
// (unplaced cell, unmapped pin, net impossible even with rip-up, invariant
// violation). The Result is populated in all three cases.
func Route(ctx *core.Context, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = ctx.Logger()
	}
	scores := o.Scoreboard
	if scores == nil {
		scores = NewScoreboard()
	}

	dev := ctx.Device()
	ripupPenalty := dev.RipupDelayPenalty()
	res := &Result{}

	log.Info("routing")

	netsQueue := make(map[core.NetID]struct{})
	for name, net := range ctx.Nets {
		if net.Driver.Cell == nil || net.Driver.Cell.Bel == core.NoBel {
			continue
		}
		if len(net.Wires) != 0 {
			continue
		}
		netsQueue[name] = struct{}{}
	}

	if len(netsQueue) == 0 {
		log.Info("found no unrouted nets, no routing necessary")
		res.Checksum = ctx.Checksum()

		return res, nil
	}

	log.Info("starting routing procedure", zap.Int("unroutedNets", len(netsQueue)))

	estimateQueue(ctx, netsQueue, res)
	if res.EstimatedPairs > 0 {
		log.Info("estimated total wire delay",
			zap.Int64("total", res.EstimatedTotalDelay),
			zap.Int64("avg", res.EstimatedTotalDelay/int64(res.EstimatedPairs)))
	}

	iterCnt := 0

	for len(netsQueue) > 0 {
		if iterCnt == o.MaxIterations {
			log.Warn("giving up", zap.Int("iterations", iterCnt))
			res.Iterations = iterCnt
			res.Checksum = ctx.Checksum()
			if err := ctx.Check(); err != nil {
				return res, err
			}

			return res, ErrGaveUp
		}
		iterCnt++

		ripupQueue := make(map[core.NetID]struct{})

		netsArray := queueKeys(netsQueue)
		core.SortedShuffle(ctx.RNG(), netsArray)
		netsQueue = make(map[core.NetID]struct{})

		for _, name := range netsArray {
			r := newNetRouter(ctx, scores, name, false, 0)
			if err := r.routeNet(log); err != nil {
				return finishFatal(ctx, res, iterCnt, err, log)
			}
			res.VisitCnt += r.visitCnt
			res.RevisitCnt += r.revisitCnt
			res.OvertimeRevisitCnt += r.overtimeRevisitCnt
			if !r.routedOkay {
				ripupQueue[name] = struct{}{}
			}
		}

		normalRouteCnt := len(netsArray) - len(ripupQueue)

		if len(ripupQueue) > 0 {
			log.Debug("re-routing in ripup mode", zap.Int("failed", len(ripupQueue)))

			ripupArray := queueKeys(ripupQueue)
			core.SortedShuffle(ctx.RNG(), ripupArray)

			for _, name := range ripupArray {
				r := newNetRouter(ctx, scores, name, true, ripupPenalty)
				if err := r.routeNet(log); err != nil {
					return finishFatal(ctx, res, iterCnt, err, log)
				}
				res.VisitCnt += r.visitCnt
				res.RevisitCnt += r.revisitCnt
				res.OvertimeRevisitCnt += r.overtimeRevisitCnt
				for ripped := range r.rippedNets {
					netsQueue[ripped] = struct{}{}
				}
			}
		}

		log.Info("iteration",
			zap.Int("iter", iterCnt),
			zap.Int("routedStrict", normalRouteCnt),
			zap.Int("routedRipup", len(ripupQueue)),
			zap.Int("requeued", len(netsQueue)))

		if penaltyEscalation[iterCnt] {
			ripupPenalty += dev.RipupDelayPenalty()
		}
	}

	res.Iterations = iterCnt
	res.Checksum = ctx.Checksum()

	log.Info("routing complete",
		zap.Int("iterations", iterCnt),
		zap.Int("visited", res.VisitCnt),
		zap.Int("revisits", res.RevisitCnt),
		zap.Int("overtimeRevisits", res.OvertimeRevisitCnt))
	log.Info("checksum", zap.Uint32("crc32", res.Checksum))

	if err := ctx.Check(); err != nil {
		return res, err
	}

	return res, nil
}

// Router1 is the boolean facade over Route: true on full success, false on
// iteration exhaustion or any fatal routing error.
func Router1(ctx *core.Context, opts ...Option) bool {
	_, err := Route(ctx, opts...)

	return err == nil
}

// ActualRouteDelay runs one strict-mode single-source search from src to
// dst, ignoring the netlist, and reports the best achievable delay. The
// second result is false when dst is unreachable.
func ActualRouteDelay(ctx *core.Context, src, dst core.Wire) (core.Delay, bool) {
	r := newNetRouter(ctx, NewScoreboard(), core.NoNet, false, 0)

	proxy := ctx.RWProxy()
	defer proxy.Release()

	r.route(proxy, map[core.Wire]core.Delay{src: 0}, dst)

	qw, ok := r.visited[dst]
	if !ok {
		return 0, false
	}

	return qw.delay, true
}

// finishFatal stamps the result, runs the final consistency check, and
// hands the fatal error back to the caller.
func finishFatal(ctx *core.Context, res *Result, iterCnt int, err error, log *zap.Logger) (*Result, error) {
	res.Iterations = iterCnt
	res.Checksum = ctx.Checksum()
	if cerr := ctx.Check(); cerr != nil {
		log.Error("post-failure consistency check failed", zap.Error(cerr))
	}

	return res, err
}

// estimateQueue sums the device's delay estimate over every driver/user
// pair of the queued nets whose wires resolve. Informational only: pairs
// with unplaced cells or unmapped pins are skipped, not reported.
func estimateQueue(ctx *core.Context, netsQueue map[core.NetID]struct{}, res *Result) {
	dev := ctx.Device()
	for name := range netsQueue {
		net := ctx.Nets[name]
		srcWire, err := resolvePortWire(dev, net.Driver)
		if err != nil {
			continue
		}
		for _, user := range net.Users {
			dstWire, err := resolvePortWire(dev, user)
			if err != nil {
				continue
			}
			res.EstimatedTotalDelay += dev.EstimateDelay(srcWire, dstWire)
			res.EstimatedPairs++
		}
	}
}

// queueKeys snapshots a queue set; the caller sorts and shuffles it.
func queueKeys(q map[core.NetID]struct{}) []core.NetID {
	keys := make([]core.NetID, 0, len(q))
	for name := range q {
		keys = append(keys, name)
	}

	return keys
}
