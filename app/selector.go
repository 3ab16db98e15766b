package app

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/internal"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/internal/smooth"
)

// SelectCutoffByFdr picks the most permissive cutoff whose (optionally
// smoothed) FDR estimate stays at or under fdrThreshold. For a direct
// statistic larger cutoffs are stricter, so the minimum qualifying cutoff is
// returned; for inverse statistics (and every theta target) the maximum is.
//
// The second return value is false when no cutoff qualifies; that outcome is
// logged as a warning, never raised as an error.
func SelectCutoffByFdr(target fdr.Target, fdrThreshold float64, windowSize int) (float64, bool, error) {
	table := target.Table()
	if table.IsEmpty() {
		return 0, false, errors.TableMissing()
	}
	if math.IsNaN(fdrThreshold) || fdrThreshold < 0 || fdrThreshold > 1 {
		return 0, false, errors.InvalidInput("FDR threshold must be within [0, 1]")
	}
	if windowSize < 1 {
		return 0, false, errors.InvalidInput("smoothing window size must be at least 1")
	}

	fdrs := table.FDRs()
	if windowSize > 1 {
		fdrs = smooth.MovingAverage(fdrs, windowSize)
	}

	found := false
	var selected float64
	for i, row := range table.Rows {
		v := fdrs[i]
		if math.IsNaN(v) || math.IsInf(v, 0) || v > fdrThreshold {
			continue
		}
		if !found {
			selected = row.Cutoff
			found = true
			continue
		}
		if target.Direct() {
			selected = math.Min(selected, row.Cutoff)
		} else {
			selected = math.Max(selected, row.Cutoff)
		}
	}
	if !found {
		internal.DefaultLogger.Warn("no cutoff satisfies FDR <= %g; returning not-found", fdrThreshold)
		return 0, false, nil
	}
	return selected, true, nil
}

// SelectCutoffByFstat converts an F-statistic parameterization into a theta
// cutoff. Theoretical mode inverts the F quantile at pValue; empirical mode
// scans the externally attached FDR-adjusted p-values instead.
//
// Requires the F-statistic step to have run on the target first.
func SelectCutoffByFstat(target *fdr.GroupDifferenceTarget, pValue float64, useFdrAdjusted bool) (float64, bool, error) {
	if len(target.Fstat) == 0 {
		return 0, false, errors.MissingColumn("F-statistic")
	}
	if math.IsNaN(pValue) || pValue < 0 || pValue > 1 {
		return 0, false, errors.InvalidInput("p-value must be within [0, 1]")
	}

	if useFdrAdjusted {
		return maxThetaUnderFdrPval(target, pValue)
	}
	return theoreticalFstatCutoff(target, pValue)
}

// theoreticalFstatCutoff computes cutoff = (N-2) / (Q + (N-2)) where Q is the
// upper-tail F quantile with (K-1, N-K) degrees of freedom, K the number of
// distinct groups and N the sample count plus the stored degrees-of-freedom
// adjustment.
func theoreticalFstatCutoff(target *fdr.GroupDifferenceTarget, pValue float64) (float64, bool, error) {
	k := float64(len(target.Groups()))
	n := float64(len(target.Group)) + target.DFAdjust
	if k < 2 {
		return 0, false, errors.InvalidInput("theoretical F cutoff needs at least two groups")
	}
	if n-k <= 0 {
		return 0, false, errors.InvalidInput("theoretical F cutoff needs more samples than groups")
	}

	dist := distuv.F{D1: k - 1, D2: n - k}
	q := dist.Quantile(1 - pValue)
	return (n - 2) / (q + (n - 2)), true, nil
}

// maxThetaUnderFdrPval returns the largest theta whose finite FDR-adjusted
// p-value is at or under pValue. Ties between equal p-values resolve to any
// maximal theta.
func maxThetaUnderFdrPval(target *fdr.GroupDifferenceTarget, pValue float64) (float64, bool, error) {
	if len(target.FdrPval) == 0 {
		return 0, false, errors.MissingColumn("FDR-adjusted p-value")
	}

	found := false
	selected := math.Inf(-1)
	for i, adjusted := range target.FdrPval {
		if math.IsNaN(adjusted) || math.IsInf(adjusted, 0) || adjusted > pValue {
			continue
		}
		if target.Theta[i] > selected || !found {
			selected = target.Theta[i]
			found = true
		}
	}
	if !found {
		internal.DefaultLogger.Warn("no theta satisfies FDR-adjusted p <= %g; returning not-found", pValue)
		return 0, false, nil
	}
	return selected, true, nil
}
