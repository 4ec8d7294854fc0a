package drift

import "math"

// centsToRatio converts a pitch offset in cents to a frequency ratio
// (1200 cents = one octave).
func centsToRatio(cents float64) float64 {
	return math.Exp2(cents / 1200.0)
}

// ratioToCents converts a frequency ratio to a pitch offset in cents.
func ratioToCents(ratio float64) float64 {
	return 1200.0 * math.Log2(ratio)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
