// Package analysis holds small descriptive helpers shared by the FDR services.
package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// StatSummary describes the distribution of an observed statistic vector.
type StatSummary struct {
	N      int
	Finite int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	Q25    float64
	Q75    float64
}

// Summarize computes descriptive statistics over the finite entries of data.
// With no finite entries every field except N is NaN/zero.
func Summarize(data []float64) StatSummary {
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
	}

	summary := StatSummary{
		N:      len(data),
		Finite: len(finite),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
		Median: math.NaN(),
		Q25:    math.NaN(),
		Q75:    math.NaN(),
	}
	if len(finite) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(finite)
	summary.StdDev, _ = stats.StandardDeviation(finite)
	summary.Min, _ = stats.Min(finite)
	summary.Max, _ = stats.Max(finite)
	summary.Median, _ = stats.Median(finite)
	summary.Q25, _ = stats.Percentile(finite, 25)
	summary.Q75, _ = stats.Percentile(finite, 75)
	return summary
}
