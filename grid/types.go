// Package grid types, options, and sentinel errors.
package grid

import (
	"errors"

	"github.com/avelanda/pnroute/core"
)

// Sentinel errors for fabric construction.
var (
	// ErrBadDimensions indicates a fabric with width or height below one.
	ErrBadDimensions = errors.New("grid: width and height must be at least one")
	// ErrOutOfBounds indicates a coordinate outside the fabric.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrDuplicateBel indicates a bel name registered twice.
	ErrDuplicateBel = errors.New("grid: bel already defined")
	// ErrUnknownBel indicates an operation on an unregistered bel.
	ErrUnknownBel = errors.New("grid: bel not found")
	// ErrDuplicatePin indicates a pin name registered twice on one bel.
	ErrDuplicatePin = errors.New("grid: pin already defined")
)

// Defaults for fabric options.
const (
	// DefaultPipDelay is the traversal delay of one pip.
	DefaultPipDelay core.Delay = 1
	// DefaultRipupPenalty is the initial congestion penalty step.
	DefaultRipupPenalty core.Delay = 5
	// DefaultEstimateCacheSize bounds the estimate memoization cache.
	DefaultEstimateCacheSize = 1024
)

// Option configures a fabric at construction time.
type Option func(*Options)

// Options holds tunable fabric parameters.
type Options struct {
	// PipDelay is the uniform traversal delay of every pip.
	PipDelay core.Delay

	// DelayEpsilon is the minimum resolvable delay improvement reported to
	// the router.
	DelayEpsilon core.Delay

	// RipupPenalty is the initial congestion penalty and escalation step.
	RipupPenalty core.Delay

	// EstimateCacheSize bounds the estimate LRU cache.
	EstimateCacheSize int
}

// DefaultOptions returns the standard fabric configuration.
func DefaultOptions() Options {
	return Options{
		PipDelay:          DefaultPipDelay,
		DelayEpsilon:      0,
		RipupPenalty:      DefaultRipupPenalty,
		EstimateCacheSize: DefaultEstimateCacheSize,
	}
}

// WithPipDelay sets the uniform pip traversal delay. Non-positive values
// are ignored.
func WithPipDelay(d core.Delay) Option {
	return func(o *Options) {
		if d > 0 {
			o.PipDelay = d
		}
	}
}

// WithDelayEpsilon sets the minimum resolvable delay improvement.
func WithDelayEpsilon(e core.Delay) Option {
	return func(o *Options) {
		if e >= 0 {
			o.DelayEpsilon = e
		}
	}
}

// WithRipupPenalty sets the congestion penalty step. Non-positive values
// are ignored.
func WithRipupPenalty(p core.Delay) Option {
	return func(o *Options) {
		if p > 0 {
			o.RipupPenalty = p
		}
	}
}

// WithEstimateCacheSize bounds the estimate cache. Non-positive values are
// ignored.
func WithEstimateCacheSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.EstimateCacheSize = n
		}
	}
}
