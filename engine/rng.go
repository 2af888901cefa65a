package engine

// RNG is a seeded deterministic pseudo-random generator producing a
// reproducible stream of values in [0,1). Two generators constructed with
// the same seed yield identical sequences, element for element. Every
// stochastic operation in the engine must consume one of these streams;
// no component may introduce its own source of randomness.
type RNG struct {
	state uint32
}

// NewRNG creates a generator from an integer seed.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Float64 advances the stream and returns the next value in [0,1).
// The step is a mulberry32 mix over a 32-bit counter.
func (r *RNG) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// IntRange returns a uniform integer in the inclusive range [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	return lo + int(r.Float64()*float64(hi-lo+1))
}

// Shuffle returns a uniformly shuffled copy of xs; the input is never
// mutated. The walk is Fisher-Yates from the last index down to 1,
// swapping with a uniformly chosen earlier-or-equal index.
func Shuffle[T any](r *RNG, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i >= 1; i-- {
		j := r.IntRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Choice returns one uniformly chosen element of xs.
func Choice[T any](r *RNG, xs []T) T {
	return xs[r.IntRange(0, len(xs)-1)]
}
