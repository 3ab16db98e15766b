// Package grid builds the monotone ladder of candidate cutoffs an FDR curve
// is evaluated over.
package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/suzannejin/propr/internal/errors"
)

// IsSkipSentinel reports whether cutoffs is the single-NaN sentinel meaning
// "skip curve construction and leave the target unchanged". Callers must
// check this before any validation or computation.
func IsSkipSentinel(cutoffs []float64) bool {
	return len(cutoffs) == 1 && math.IsNaN(cutoffs[0])
}

// Build derives nbins+1 cutoffs as empirical quantiles of the observed
// statistic values at the equally spaced probabilities 0, 1/nbins, ..., 1.
// Non-finite observations are ignored. The result is monotone non-decreasing
// and spans the finite range of the input; duplicates are possible when
// quantiles collapse.
func Build(values []float64, nbins int) ([]float64, error) {
	if nbins < 1 {
		return nil, errors.InvalidInput("cutoff grid needs at least one bin")
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return nil, errors.InvalidInput("cannot build a cutoff grid: no finite statistic values")
	}
	sort.Float64s(finite)

	cutoffs := make([]float64, nbins+1)
	for i := 0; i <= nbins; i++ {
		p := float64(i) / float64(nbins)
		cutoffs[i] = stat.Quantile(p, stat.Empirical, finite, nil)
	}
	return cutoffs, nil
}
