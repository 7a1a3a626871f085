package systems

// Rand is the random source the simulation draws from.
// *math/rand.Rand satisfies it; seed it for reproducible runs.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// uniform returns a value in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intRange returns an integer in [lo, hi], both inclusive.
func intRange(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
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
