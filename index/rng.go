// Package index - seed utilities shared by the stochastic sources.
//
// This file centralizes deterministic seed handling for every Source.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across platforms.
//   - Encapsulation: a single mixing function; no time-based sources anywhere.
//   - Independence: derived streams (per depth, per candidate) are decorrelated.
package index

// defaultSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultSeed int64 = 1

// normalizeSeed applies the seed==0 policy.
func normalizeSeed(seed int64) int64 {
	if seed == 0 {
		return defaultSeed
	}

	return seed
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
//
// The constants are the SplitMix64 increment and finalizer multipliers; small
// input changes produce well-distributed output changes, so consecutive depths
// or candidate numbers yield unrelated draws.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// fromSeed folds a mixed seed into the Index domain.
func fromSeed(seed int64) Index {
	return Index(uint64(seed) % MaxIndex)
}

// unit maps a mixed seed onto [0, 1).
func unit(seed int64) float64 {
	return float64(uint64(seed)>>11) / (1 << 53)
}
