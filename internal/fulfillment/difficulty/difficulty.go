// Package difficulty maps delivery distance onto a 256-bit proof-of-work
// target.
package difficulty

import (
	"math"
	"math/big"
)

// maxTarget is 2^256 - 1, the easiest possible target.
var maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// scaleKm is the distance in kilometers that multiplies the difficulty
// factor by 16. Flying twice as far squares the effective search space.
const scaleKm = 7500

// MaxTarget returns a copy of 2^256 - 1.
func MaxTarget() *big.Int {
	return new(big.Int).Set(maxTarget)
}

// TargetFor derives the proof-of-work target for a round-trip delivery
// distance: MAX / floor(16^(km/7500)), integer division.
//
// A hash qualifies when its numeric value is strictly below the target, so a
// lower target means rarer valid hashes and more work. Distances of zero or
// less yield factor 1 and the full-range target. Factors that would exceed
// MAX are clamped to MAX, collapsing the target to 1: beyond that point the
// search is effectively unbounded anyway.
func TargetFor(roundTripKm float64) *big.Int {
	factor := factorFor(roundTripKm)
	if factor.Sign() <= 0 {
		factor = big.NewInt(1)
	}
	if factor.Cmp(maxTarget) > 0 {
		factor = maxTarget
	}
	return new(big.Int).Div(maxTarget, factor)
}

// factorFor computes floor(16^(km/7500)) as an arbitrary-precision integer.
//
// Doubles lose integer precision beyond 2^53, so only small exponents take
// the direct floating-point path. Larger ones are split into a whole power
// of 16, computed exactly with big.Int, and a fractional tail in [1, 16)
// approximated by a double. The result stays monotone in km.
func factorFor(roundTripKm float64) *big.Int {
	if roundTripKm <= 0 {
		return big.NewInt(1)
	}

	exponent := roundTripKm / scaleKm
	if exponent >= 64 { // 16^64 = 2^256 already exceeds MAX
		return new(big.Int).Set(maxTarget)
	}
	if exponent <= 12 { // 16^12 = 2^48, comfortably exact in a float64
		return big.NewInt(int64(math.Pow(16, exponent)))
	}

	whole := math.Floor(exponent)
	tail := math.Pow(16, exponent-whole) // in [1, 16)

	factor := new(big.Int).Lsh(big.NewInt(1), 4*uint(whole))
	// Scale the tail to 2^52 so the multiplication stays integral.
	scaledTail := new(big.Int).SetUint64(uint64(tail * (1 << 52)))
	factor.Mul(factor, scaledTail)
	factor.Rsh(factor, 52)
	return factor
}
