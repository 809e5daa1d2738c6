package route

import "github.com/avelanda/pnroute/core"

// netWireKey keys the per-(net, wire) history counter.
type netWireKey struct {
	net  core.NetID
	wire core.Wire
}

// netPipKey keys the per-(net, pip) history counter.
type netPipKey struct {
	net core.NetID
	pip core.Pip
}

// Scoreboard accumulates congestion history across routing iterations.
//
// Four counters: a global score per wire and per pip, and a score per
// (net, wire) and (net, pip) pair counting how often that net was ejected
// from that resource. Missing entries read as zero, and counters only ever
// grow during a run. The search turns these into delay surcharges, which is
// what makes repeatedly contested resources progressively less attractive.
type Scoreboard struct {
	wireScores    map[core.Wire]int
	pipScores     map[core.Pip]int
	netWireScores map[netWireKey]int
	netPipScores  map[netPipKey]int
}

// NewScoreboard returns an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		wireScores:    make(map[core.Wire]int),
		pipScores:     make(map[core.Pip]int),
		netWireScores: make(map[netWireKey]int),
		netPipScores:  make(map[netPipKey]int),
	}
}

// WireScore returns the global congestion history of a wire.
func (s *Scoreboard) WireScore(w core.Wire) int { return s.wireScores[w] }

// PipScore returns the global congestion history of a pip.
func (s *Scoreboard) PipScore(p core.Pip) int { return s.pipScores[p] }

// NetWireScore returns how often the net has been ejected from the wire.
func (s *Scoreboard) NetWireScore(n core.NetID, w core.Wire) int {
	return s.netWireScores[netWireKey{net: n, wire: w}]
}

// NetPipScore returns how often the net has been ejected from the pip.
func (s *Scoreboard) NetPipScore(n core.NetID, p core.Pip) int {
	return s.netPipScores[netPipKey{net: n, pip: p}]
}

// IncWireScore bumps the global wire counter.
func (s *Scoreboard) IncWireScore(w core.Wire) { s.wireScores[w]++ }

// IncPipScore bumps the global pip counter.
func (s *Scoreboard) IncPipScore(p core.Pip) { s.pipScores[p]++ }

// IncNetWireScore bumps the (net, wire) counter.
func (s *Scoreboard) IncNetWireScore(n core.NetID, w core.Wire) {
	s.netWireScores[netWireKey{net: n, wire: w}]++
}

// IncNetPipScore bumps the (net, pip) counter.
func (s *Scoreboard) IncNetPipScore(n core.NetID, p core.Pip) {
	s.netPipScores[netPipKey{net: n, pip: p}]++
}
