// Package smooth implements the NA-aware moving average used to stabilize
// empirical FDR curves before cutoff selection.
package smooth

import (
	"math"

	"github.com/suzannejin/propr/internal"
)

// MovingAverage returns a same-length smoothed copy of values.
//
// For position i the window is [i-w/2, i+w/2] for odd window sizes and the
// asymmetric [i-(w/2-1), i+w/2] for even ones, clamped at the sequence ends
// (the window shrinks near boundaries rather than wrapping or padding).
// Non-finite neighbours are excluded from the average; a non-finite center
// value passes through unchanged. A window size of 1 or less is the identity.
func MovingAverage(values []float64, windowSize int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if windowSize <= 1 || len(values) == 0 {
		return out
	}

	if hasNonFinite(values) {
		internal.DefaultLogger.Info("moving average input contains non-finite values; they are skipped as neighbours and preserved in place")
	}

	lo := windowSize / 2
	hi := windowSize / 2
	if windowSize%2 == 0 {
		lo = windowSize/2 - 1
	}

	for i := range values {
		if !isFinite(values[i]) {
			continue // never smooth a non-finite value away
		}
		start := i - lo
		if start < 0 {
			start = 0
		}
		end := i + hi
		if end > len(values)-1 {
			end = len(values) - 1
		}

		sum := 0.0
		n := 0
		for j := start; j <= end; j++ {
			if !isFinite(values[j]) {
				continue
			}
			sum += values[j]
			n++
		}
		// n >= 1: the finite center is always inside its own window
		out[i] = sum / float64(n)
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func hasNonFinite(values []float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return true
		}
	}
	return false
}
