// Package route options and sentinel errors.
package route

import (
	"errors"

	"go.uber.org/zap"

	"github.com/avelanda/pnroute/core"
)

// Sentinel errors for routing.
var (
	// ErrUnknownNet is returned when a routed net is not in the netlist.
	ErrUnknownNet = errors.New("route: net not found")

	// ErrNoDriver is returned when a routed net has no driver cell.
	ErrNoDriver = errors.New("route: net has no driver")

	// ErrUnplacedCell is returned when a driver or user cell has no bel.
	ErrUnplacedCell = errors.New("route: cell is not mapped to a bel")

	// ErrUnmappedPort is returned when a port resolves to no wire on its bel.
	ErrUnmappedPort = errors.New("route: no wire for port on bel")

	// ErrUnroutable is returned when a net cannot be routed even in rip-up mode.
	ErrUnroutable = errors.New("route: net is impossible to route")

	// ErrRipupIncomplete is returned when a net still claims wires after rip-up.
	ErrRipupIncomplete = errors.New("route: net still bound after rip-up")

	// ErrUnexpectedConflict is returned when a walk-back meets a binding the
	// search must have excluded: any conflict in strict mode, or a conflict
	// with the routed net itself.
	ErrUnexpectedConflict = errors.New("route: unexpected conflicting binding on walk-back")

	// ErrGaveUp is returned when the iteration budget runs out with nets unrouted.
	ErrGaveUp = errors.New("route: gave up after iteration limit")
)

// maxIterations bounds the outer loop.
const maxIterations = 200

// penaltyEscalation lists the iterations after which the rip-up penalty
// grows by another RipupDelayPenalty step.
var penaltyEscalation = map[int]bool{8: true, 16: true, 32: true, 64: true, 128: true}

// Option configures a routing run via functional arguments.
type Option func(*Options)

// Options holds tunable parameters for Route.
type Options struct {
	// MaxIterations caps the outer loop (default 200).
	MaxIterations int

	// Logger overrides the context logger when non-nil.
	Logger *zap.Logger

	// Scoreboard carries congestion history into the run; Route allocates a
	// fresh one when nil. Injecting a scoreboard lets callers observe the
	// history a run accumulated.
	Scoreboard *Scoreboard
}

// DefaultOptions returns the standard routing configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations: maxIterations,
	}
}

// WithMaxIterations overrides the outer-loop budget. Non-positive values
// are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithLogger routes progress output through log.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithScoreboard supplies the congestion history for the run.
func WithScoreboard(sb *Scoreboard) Option {
	return func(o *Options) { o.Scoreboard = sb }
}

// Result reports a completed (or abandoned) routing run.
type Result struct {
	// Iterations is the number of outer-loop passes executed.
	Iterations int

	// VisitCnt, RevisitCnt, and OvertimeRevisitCnt accumulate the search
	// statistics of every net routed during the run. A revisit is a
	// relaxation that replaced an already-visited wire; it counts as
	// overtime when it happened after the destination was first settled.
	VisitCnt           int
	RevisitCnt         int
	OvertimeRevisitCnt int

	// EstimatedTotalDelay sums the device's delay estimate over every
	// resolvable driver/user pair before routing starts; EstimatedPairs is
	// the number of pairs that contributed.
	EstimatedTotalDelay core.Delay
	EstimatedPairs      int

	// Checksum is the routing-database digest at the end of the run.
	Checksum uint32
}
