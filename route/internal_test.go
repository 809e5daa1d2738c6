package route

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avelanda/pnroute/core"
)

// trivialContext builds the smallest routable design: w0 -p0-> w1, one net
// driving w0 with a single user at w1.
func trivialContext() (*core.Context, *core.Net) {
	dev := newStubDevice([]stubPip{{src: 0, dst: 1, delay: 1}})
	dev.mapPin(0, "O", 0)
	dev.mapPin(1, "I", 1)

	ctx := core.NewContext(dev, core.WithSeed(1))
	net := addStubNet(ctx, "n1",
		core.PortRef{Cell: stubCell("src", 0), Port: "O"},
		core.PortRef{Cell: stubCell("dst", 1), Port: "I"})

	return ctx, net
}

func TestRouteNet_Trivial(t *testing.T) {
	ctx, net := trivialContext()

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.NoError(t, r.routeNet(zap.NewNop()))
	require.True(t, r.routedOkay)
	require.Equal(t, core.Delay(1), r.maxDelay)

	// Source wire with no entering pip, destination wire entered by p0.
	require.Len(t, net.Wires, 2)
	require.Equal(t, core.BoundSegment{Pip: core.NoPip, Strength: core.StrengthWeak}, net.Wires[0])
	require.Equal(t, core.BoundSegment{Pip: 0, Strength: core.StrengthWeak}, net.Wires[1])

	// A net routed without rip-up must not have evicted anyone.
	require.Empty(t, r.rippedNets)
	require.NoError(t, ctx.Check())
}

func TestRouteNet_FanoutSteinerReuse(t *testing.T) {
	// w0 -p0-> w1, w1 -p1-> w2, w1 -p2-> w3: users at w2 and w3 must share
	// the w0->w1 trunk instead of claiming it twice.
	dev := newStubDevice([]stubPip{
		{src: 0, dst: 1, delay: 1},
		{src: 1, dst: 2, delay: 1},
		{src: 1, dst: 3, delay: 1},
	})
	dev.mapPin(0, "O", 0)
	dev.mapPin(1, "I", 2)
	dev.mapPin(2, "I", 3)

	ctx := core.NewContext(dev, core.WithSeed(1))
	net := addStubNet(ctx, "n1",
		core.PortRef{Cell: stubCell("src", 0), Port: "O"},
		core.PortRef{Cell: stubCell("u1", 1), Port: "I"},
		core.PortRef{Cell: stubCell("u2", 2), Port: "I"})

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.NoError(t, r.routeNet(zap.NewNop()))
	require.True(t, r.routedOkay)

	require.Len(t, net.Wires, 4)
	bound := make(map[core.Pip]bool)
	for _, seg := range net.Wires {
		if seg.Pip != core.NoPip {
			bound[seg.Pip] = true
		}
	}
	require.Equal(t, map[core.Pip]bool{0: true, 1: true, 2: true}, bound)

	// The trunk wire w1 is claimed exactly once, by p0.
	require.Equal(t, core.Pip(0), net.Wires[1].Pip)
	require.Equal(t, core.Delay(2), r.maxDelay)
	require.NoError(t, ctx.Check())
}

func TestRouteNet_SinkEqualsSourceWire(t *testing.T) {
	// The user pin maps to the driver wire itself: one wire, no pips.
	dev := newStubDevice([]stubPip{{src: 0, dst: 1, delay: 1}})
	dev.mapPin(0, "O", 0)
	dev.mapPin(1, "I", 0)

	ctx := core.NewContext(dev, core.WithSeed(1))
	net := addStubNet(ctx, "n1",
		core.PortRef{Cell: stubCell("src", 0), Port: "O"},
		core.PortRef{Cell: stubCell("dst", 1), Port: "I"})

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.NoError(t, r.routeNet(zap.NewNop()))
	require.True(t, r.routedOkay)
	require.Len(t, net.Wires, 1)
	require.Equal(t, core.BoundSegment{Pip: core.NoPip, Strength: core.StrengthWeak}, net.Wires[0])
	require.Equal(t, core.Delay(0), r.maxDelay)
}

func TestRouteNet_StrictFailureRipsUpFully(t *testing.T) {
	// No pip reaches w1: the strict attempt reports failure, names the
	// destination, and leaves nothing bound.
	dev := newStubDevice([]stubPip{{src: 1, dst: 0, delay: 1}})
	dev.mapPin(0, "O", 0)
	dev.mapPin(1, "I", 1)

	ctx := core.NewContext(dev, core.WithSeed(1))
	net := addStubNet(ctx, "n1",
		core.PortRef{Cell: stubCell("src", 0), Port: "O"},
		core.PortRef{Cell: stubCell("dst", 1), Port: "I"})

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.NoError(t, r.routeNet(zap.NewNop()))
	require.False(t, r.routedOkay)
	require.Equal(t, core.Wire(1), r.failedDest)
	require.Empty(t, net.Wires)
	require.NoError(t, ctx.Check())
}

func TestRouteNet_RipupModeImpossibleIsFatal(t *testing.T) {
	dev := newStubDevice([]stubPip{{src: 1, dst: 0, delay: 1}})
	dev.mapPin(0, "O", 0)
	dev.mapPin(1, "I", 1)

	ctx := core.NewContext(dev, core.WithSeed(1))
	addStubNet(ctx, "n1",
		core.PortRef{Cell: stubCell("src", 0), Port: "O"},
		core.PortRef{Cell: stubCell("dst", 1), Port: "I"})

	r := newNetRouter(ctx, NewScoreboard(), "n1", true, 5)
	err := r.routeNet(zap.NewNop())
	require.ErrorIs(t, err, ErrUnroutable)
}

func TestRouteNet_UnplacedDriverIsFatal(t *testing.T) {
	ctx, net := trivialContext()
	net.Driver.Cell.Bel = core.NoBel

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.ErrorIs(t, r.routeNet(zap.NewNop()), ErrUnplacedCell)
}

func TestRouteNet_UnmappedPortIsFatal(t *testing.T) {
	ctx, net := trivialContext()
	net.Users[0].Port = "NOPE"

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.ErrorIs(t, r.routeNet(zap.NewNop()), ErrUnmappedPort)
}

// contentionDevice builds the shared-corridor graph:
//
//	a0 -p0-> m -p1-> a2        (net A, short, through m)
//	a0 -p2-> x1 -p3-> x2 -p4-> a2   (net A, long, private)
//	b0 -p5-> m -p6-> b2        (net B, only path, through m)
const (
	cwA0 core.Wire = 0
	cwM  core.Wire = 1
	cwA2 core.Wire = 2
	cwX1 core.Wire = 3
	cwX2 core.Wire = 4
	cwB0 core.Wire = 5
	cwB2 core.Wire = 6
)

func contentionContext(seed uint64) (*core.Context, *core.Net, *core.Net) {
	dev := newStubDevice([]stubPip{
		{src: cwA0, dst: cwM, delay: 1},
		{src: cwM, dst: cwA2, delay: 1},
		{src: cwA0, dst: cwX1, delay: 1},
		{src: cwX1, dst: cwX2, delay: 1},
		{src: cwX2, dst: cwA2, delay: 1},
		{src: cwB0, dst: cwM, delay: 1},
		{src: cwM, dst: cwB2, delay: 1},
	})
	dev.mapPin(0, "O", cwA0)
	dev.mapPin(1, "I", cwA2)
	dev.mapPin(2, "O", cwB0)
	dev.mapPin(3, "I", cwB2)

	ctx := core.NewContext(dev, core.WithSeed(seed))
	netA := addStubNet(ctx, "A",
		core.PortRef{Cell: stubCell("srcA", 0), Port: "O"},
		core.PortRef{Cell: stubCell("dstA", 1), Port: "I"})
	netB := addStubNet(ctx, "B",
		core.PortRef{Cell: stubCell("srcB", 2), Port: "O"},
		core.PortRef{Cell: stubCell("dstB", 3), Port: "I"})

	return ctx, netA, netB
}

func TestRipup_EvictsConflictAndScores(t *testing.T) {
	ctx, netA, netB := contentionContext(1)
	scores := NewScoreboard()

	// Strict pass: A takes the short corridor through m.
	rA := newNetRouter(ctx, scores, "A", false, 0)
	require.NoError(t, rA.routeNet(zap.NewNop()))
	require.True(t, rA.routedOkay)
	require.Contains(t, netA.Wires, cwM)

	// Strict pass: B cannot touch the occupied corridor.
	rB := newNetRouter(ctx, scores, "B", false, 0)
	require.NoError(t, rB.routeNet(zap.NewNop()))
	require.False(t, rB.routedOkay)
	require.Equal(t, cwB2, rB.failedDest)

	// Rip-up pass: B pays the penalty, evicts A from m, and the eviction
	// is tallied for both nets.
	rB = newNetRouter(ctx, scores, "B", true, 5)
	require.NoError(t, rB.routeNet(zap.NewNop()))
	require.True(t, rB.routedOkay)
	require.Contains(t, rB.rippedNets, core.NetID("A"))
	require.Contains(t, netB.Wires, cwM)
	require.NotContains(t, netA.Wires, cwM)

	require.Equal(t, 1, scores.WireScore(cwM))
	require.Equal(t, 1, scores.NetWireScore("A", cwM))
	require.Equal(t, 1, scores.NetWireScore("B", cwM))

	// Requeued A reroutes over its private detour.
	rA = newNetRouter(ctx, scores, "A", false, 0)
	require.NoError(t, rA.routeNet(zap.NewNop()))
	require.True(t, rA.routedOkay)
	require.Equal(t, core.Delay(3), rA.maxDelay)
	require.Contains(t, netA.Wires, cwX1)
	require.Contains(t, netA.Wires, cwX2)

	require.NoError(t, ctx.Check())
}

func TestRipup_PenaltySteersAwayFromOccupied(t *testing.T) {
	// b0 has a private detour to b2 of delay 4; the occupied corridor
	// through m costs 2 plus the flat penalty. A small penalty evicts, a
	// large one detours.
	build := func(seed uint64) (*core.Context, *Scoreboard) {
		dev := newStubDevice([]stubPip{
			{src: cwA0, dst: cwM, delay: 1},
			{src: cwM, dst: cwA2, delay: 1},
			{src: cwB0, dst: cwM, delay: 1},
			{src: cwM, dst: cwB2, delay: 1},
			{src: cwB0, dst: cwX1, delay: 2},
			{src: cwX1, dst: cwB2, delay: 2},
		})
		dev.mapPin(0, "O", cwA0)
		dev.mapPin(1, "I", cwA2)
		dev.mapPin(2, "O", cwB0)
		dev.mapPin(3, "I", cwB2)

		ctx := core.NewContext(dev, core.WithSeed(seed))
		addStubNet(ctx, "A",
			core.PortRef{Cell: stubCell("srcA", 0), Port: "O"},
			core.PortRef{Cell: stubCell("dstA", 1), Port: "I"})
		addStubNet(ctx, "B",
			core.PortRef{Cell: stubCell("srcB", 2), Port: "O"},
			core.PortRef{Cell: stubCell("dstB", 3), Port: "I"})

		scores := NewScoreboard()
		rA := newNetRouter(ctx, scores, "A", false, 0)
		require.NoError(t, rA.routeNet(zap.NewNop()))
		require.True(t, rA.routedOkay)

		return ctx, scores
	}

	t.Run("small penalty evicts", func(t *testing.T) {
		ctx, scores := build(1)
		rB := newNetRouter(ctx, scores, "B", true, 1)
		require.NoError(t, rB.routeNet(zap.NewNop()))
		require.True(t, rB.routedOkay)
		require.Contains(t, rB.rippedNets, core.NetID("A"))
	})

	t.Run("large penalty detours", func(t *testing.T) {
		ctx, scores := build(1)
		rB := newNetRouter(ctx, scores, "B", true, 10)
		require.NoError(t, rB.routeNet(zap.NewNop()))
		require.True(t, rB.routedOkay)
		require.Empty(t, rB.rippedNets)
	})
}

func TestSearch_OvertimeLimit(t *testing.T) {
	// w0 reaches the destination w1 in one hop but also fans out to 20
	// decoys, each with one successor. The first pop costs 21 visits and
	// settles the destination, so the budget locks at 31; the decoy chains
	// could supply 41.
	pips := []stubPip{{src: 0, dst: 1, delay: 1}}
	for i := 0; i < 20; i++ {
		decoy := core.Wire(2 + 2*i)
		pips = append(pips,
			stubPip{src: 0, dst: decoy, delay: 1},
			stubPip{src: decoy, dst: decoy + 1, delay: 1})
	}
	dev := newStubDevice(pips)
	ctx := core.NewContext(dev, core.WithSeed(1))
	ctx.AddNet(core.NewNet("n1"))

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	proxy := ctx.RWProxy()
	r.route(proxy, map[core.Wire]core.Delay{0: 0}, 1)
	proxy.Release()

	_, reached := r.visited[1]
	require.True(t, reached)
	require.Equal(t, 31, r.visitCnt)
}

func TestSearch_ImprovesSettledDestinationInOvertime(t *testing.T) {
	// The direct pip reaches w1 at delay 5; the two-hop detour via a
	// reaches it at delay 2 after the destination has been settled. The
	// improvement lands in the overtime tally and wins the walk-back.
	dev := newStubDevice([]stubPip{
		{src: 0, dst: 1, delay: 5},
		{src: 0, dst: 2, delay: 1},
		{src: 2, dst: 1, delay: 1},
	})
	ctx := core.NewContext(dev, core.WithSeed(1))
	ctx.AddNet(core.NewNet("n1"))

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	proxy := ctx.RWProxy()
	r.route(proxy, map[core.Wire]core.Delay{0: 0}, 1)
	proxy.Release()

	require.Equal(t, 0, r.revisitCnt)
	require.Equal(t, 1, r.overtimeRevisitCnt)
	require.Equal(t, core.Delay(2), r.visited[1].delay)
	require.Equal(t, core.Pip(2), r.visited[1].pip)
}

func TestSearch_DeterministicTieBreak(t *testing.T) {
	// Two equal-cost routes to w3; the chosen predecessor depends only on
	// the seed.
	build := func(seed uint64) core.Pip {
		dev := newStubDevice([]stubPip{
			{src: 0, dst: 1, delay: 1},
			{src: 0, dst: 2, delay: 1},
			{src: 1, dst: 3, delay: 1},
			{src: 2, dst: 3, delay: 1},
		})
		ctx := core.NewContext(dev, core.WithSeed(seed))
		ctx.AddNet(core.NewNet("n1"))

		r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
		proxy := ctx.RWProxy()
		r.route(proxy, map[core.Wire]core.Delay{0: 0}, 3)
		proxy.Release()

		return r.visited[3].pip
	}

	require.Equal(t, build(42), build(42))
	require.Equal(t, build(7), build(7))
}

func TestActualRouteDelay(t *testing.T) {
	dev := newStubDevice([]stubPip{
		{src: 0, dst: 1, delay: 1},
		{src: 1, dst: 2, delay: 1},
	})
	ctx := core.NewContext(dev, core.WithSeed(1))

	delay, ok := ActualRouteDelay(ctx, 0, 2)
	require.True(t, ok)
	require.Equal(t, core.Delay(2), delay)

	_, ok = ActualRouteDelay(ctx, 2, 0)
	require.False(t, ok)
}

func TestRipupNet_Idempotent(t *testing.T) {
	ctx, net := trivialContext()

	r := newNetRouter(ctx, NewScoreboard(), "n1", false, 0)
	require.NoError(t, r.routeNet(zap.NewNop()))
	require.NotEmpty(t, net.Wires)

	sum := ctx.Checksum()
	require.NoError(t, RipupNet(ctx, "n1"))
	require.Empty(t, net.Wires)
	ripped := ctx.Checksum()
	require.NotEqual(t, sum, ripped)

	// A second rip-up leaves the same post-state.
	require.NoError(t, RipupNet(ctx, "n1"))
	require.Empty(t, net.Wires)
	require.Equal(t, ripped, ctx.Checksum())
	require.NoError(t, ctx.Check())
}
