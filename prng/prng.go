// Package prng implements the deterministic pseudorandom source the map
// generator consumes. It is a Lehmer (multiplicative) linear congruential
// generator — the same family as the C++ original's std::minstd_rand
// (original_source/Wincrawl2/places.hpp) — seeded once at world creation so
// that identical (seed, numRooms) pairs reproduce byte-identical tile
// graphs up to tile-ID renumbering.
package prng

const (
	modulus    = 2147483647 // 2^31 - 1, a Mersenne prime
	multiplier = 48271      // Park-Miller "minimal standard" multiplier
)

// Source is a single pseudorandom stream. It is not safe for concurrent
// use — the core is single-threaded cooperative (see DESIGN.md).
type Source struct {
	state uint64
}

// New creates a Source seeded from seed. A zero seed is remapped to 1,
// since 0 is a fixed point of the Lehmer recurrence.
func New(seed int64) *Source {
	s := uint64(seed) % modulus
	if s == 0 {
		s = 1
	}
	return &Source{state: s}
}

// next advances the generator and returns the raw state in [1, modulus-1].
func (s *Source) next() uint64 {
	s.state = (s.state * multiplier) % modulus
	return s.state
}

// Int returns n such that 0 <= n < max. Panics if max <= 0.
func (s *Source) Int(max int) int {
	if max <= 0 {
		panic("prng: Int requires max > 0")
	}
	return int(s.next() % uint64(max))
}

// IntRange returns n such that min <= n < max. Panics if max <= min.
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		panic("prng: IntRange requires max > min")
	}
	return min + s.Int(max-min)
}

// Float returns f such that 0 <= f < max.
func (s *Source) Float(max float64) float64 {
	frac := float64(s.next()-1) / float64(modulus-1)
	return frac * max
}

// FloatRange returns f such that min <= f < max.
func (s *Source) FloatRange(min, max float64) float64 {
	return min + s.Float(max-min)
}

// Bool returns true with probability 1/n (e.g. n=3 for "roughly 1/3").
func (s *Source) Bool(n int) bool {
	return s.Int(n) == 0
}

// Shuffle permutes data in place using the Fisher-Yates algorithm, driven
// by this source so shuffles participate in the deterministic sequence.
func Shuffle[T any](s *Source, data []T) {
	for i := len(data) - 1; i > 0; i-- {
		j := s.Int(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
