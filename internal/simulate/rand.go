// Package simulate produces deterministic synthetic performance data.
//
// All randomness flows through a fixed linear-congruential recurrence so
// that results are reproducible bit-for-bit across runs and across
// implementations. The same generator seeds both the per-day metric
// simulation and the leaderboard roster synthesis.
package simulate

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Rand is a seeded pseudo-random generator carried by value. Next returns
// the advanced state together with the sample instead of mutating in
// place, so a generator value can be replayed from any point.
type Rand struct {
	seed int64
}

// NewRand returns a generator seeded with the given integer.
func NewRand(seed int64) Rand {
	return Rand{seed: seed % lcgModulus}
}

// Next advances the recurrence seed = (seed*9301 + 49297) mod 233280 and
// returns the uniform sample seed/233280 in [0, 1).
func (r Rand) Next() (Rand, float64) {
	seed := (r.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	return Rand{seed: seed}, float64(seed) / lcgModulus
}

// Float returns a uniform sample in [min, max).
func (r Rand) Float(min, max float64) (Rand, float64) {
	next, sample := r.Next()
	return next, min + sample*(max-min)
}

// Int returns a uniform integer in [min, max] inclusive.
func (r Rand) Int(min, max int) (Rand, int) {
	next, sample := r.Next()
	return next, min + int(sample*float64(max-min+1))
}

// HashString reduces a string to a stable non-negative seed using the
// 32-bit shift-add hash (h = h*31 + ch, computed as (h<<5)-h+ch with
// wrap-around). Recorded fixtures depend on this exact function.
func HashString(s string) int64 {
	var h int32
	for _, ch := range s {
		h = (h << 5) - h + ch
	}
	if h < 0 {
		h = -h
	}
	return int64(h)
}
