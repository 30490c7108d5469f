package oilshape

import "math"

// Park-Miller minimal standard generator constants.
const (
	lcgModulus    = 2147483647
	lcgMultiplier = 16807
	maxSeed       = lcgModulus - 1
)

// SeededRandom is a deterministic Park-Miller linear congruential generator.
// The same seed always yields the same infinite sequence. Not safe for
// concurrent use.
type SeededRandom struct {
	state int64
}

// NewSeededRandom returns a generator for seed. The seed is normalized with
// NormalizeSeed so zero and negative seeds never stall the sequence.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{state: NormalizeSeed(seed)}
}

// NormalizeSeed maps any integer into the valid non-zero range
// [1, 2147483646].
func NormalizeSeed(seed int64) int64 {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	if s == 0 {
		s = maxSeed
	}
	return s
}

// NormalizeSeedFloat is NormalizeSeed for seeds that arrive as floats from
// deserialized data. Non-finite values map to 1.
func NormalizeSeedFloat(seed float64) int64 {
	if math.IsNaN(seed) || math.IsInf(seed, 0) {
		return 1
	}
	return NormalizeSeed(int64(math.Mod(math.Trunc(seed), lcgModulus)))
}

// Float64 returns the next value in [0, 1).
func (r *SeededRandom) Float64() float64 {
	r.state = r.state * lcgMultiplier % lcgModulus
	return float64(r.state-1) / float64(maxSeed)
}

// Range returns a value in [min, max).
func (r *SeededRandom) Range(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Signed returns a value in [-1, 1).
func (r *SeededRandom) Signed() float64 {
	return r.Float64()*2 - 1
}

// Intn returns an int in [0, n). n <= 0 returns 0.
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports true with probability p.
func (r *SeededRandom) Chance(p float64) bool {
	return r.Float64() < p
}

// Seed returns a fresh normalized seed drawn from the sequence.
func (r *SeededRandom) Seed() int64 {
	return 1 + int64(r.Float64()*float64(maxSeed-1))
}

// Sample returns a value drawn uniformly from the range using rng.
func (rg Range) Sample(rng *SeededRandom) float64 {
	if rg.Min == rg.Max {
		return rg.Min
	}
	return rg.Min + rng.Float64()*(rg.Max-rg.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalizeDegrees maps a into [0, 360).
func normalizeDegrees(a float64) float64 {
	if !finite(a) {
		return 0
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
