package core

import (
	"cmp"
	"slices"
)

// defaultSeed keeps a zero-seeded context deterministic without collapsing
// the xorshift state to the all-zero fixed point.
const defaultSeed uint64 = 0x3141592653589793

// RNG is a deterministic xorshift64* stream.
//
// All randomized decisions in the router (queue tie-breaking, net shuffles)
// must draw from the single stream owned by the Context, never from a
// per-component instance, so that a seed fully determines a routing run.
// math/rand is not used because its stream is not guaranteed stable across
// Go releases.
type RNG struct {
	state uint64
}

// NewRNG returns a stream seeded with seed; a zero seed selects the default.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = defaultSeed
	}

	return &RNG{state: seed}
}

// next advances the xorshift64 state.
func (r *RNG) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x

	return x * 0x2545f4914f6cdd1d
}

// Int returns a non-negative pseudo-random int in [0, 2^30).
func (r *RNG) Int() int {
	return int(r.next() & 0x3fffffff)
}

// Intn returns a pseudo-random int in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("core: Intn with non-positive n")
	}

	return r.Int() % n
}

// Shuffle permutes a in place using a Fisher-Yates walk over the stream.
func Shuffle[T any](r *RNG, a []T) {
	for i := range a {
		j := i + r.Intn(len(a)-i)
		a[i], a[j] = a[j], a[i]
	}
}

// SortedShuffle sorts a and then shuffles it, so the permutation depends
// only on the stream state and the multiset of elements, never on the
// caller's iteration order. Queues collected from maps go through this.
func SortedShuffle[T cmp.Ordered](r *RNG, a []T) {
	slices.Sort(a)
	Shuffle(r, a)
}
