// Package exceed provides the counting primitives behind the permutation
// FDR estimate: how many statistic values sit beyond a candidate cutoff.
// Non-finite values are never counted on either side.
package exceed

import "math"

// CountGreaterThan returns the number of finite values strictly above threshold.
func CountGreaterThan(values []float64, threshold float64) int {
	count := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v > threshold {
			count++
		}
	}
	return count
}

// CountLessThan returns the number of finite values strictly below threshold.
func CountLessThan(values []float64, threshold float64) int {
	count := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < threshold {
			count++
		}
	}
	return count
}

// CountBeyond applies the directional exceedance rule shared by both curve
// builders: for a strictly positive cutoff a direct statistic counts values
// above it and an inverse statistic counts values below it; for cutoffs at or
// below zero the operator flips, so correlation-like metrics whose significant
// region straddles zero are counted on the correct side of each tail.
func CountBeyond(values []float64, cutoff float64, direct bool) int {
	if (cutoff > 0) == direct {
		return CountGreaterThan(values, cutoff)
	}
	return CountLessThan(values, cutoff)
}
