package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/domain/metric"
	apperrors "github.com/suzannejin/propr/internal/errors"
)

func tableFrom(cutoffs, fdrs []float64) *fdr.Table {
	rows := make([]fdr.Row, len(cutoffs))
	for i := range cutoffs {
		rows[i] = fdr.Row{Cutoff: cutoffs[i], FDR: fdrs[i], TrueCount: 1, RandCount: fdrs[i]}
	}
	return fdr.NewTable("", 10, rows)
}

func TestSelectCutoffByFdrDirection(t *testing.T) {
	cutoffs := []float64{0.1, 0.2, 0.3}
	fdrs := []float64{0.5, 0.03, 0.01}

	direct := &fdr.PairwiseTarget{Metric: metric.Rho, Fdr: tableFrom(cutoffs, fdrs)}
	cutoff, found, err := SelectCutoffByFdr(direct, 0.05, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.2, cutoff, "direct: minimum qualifying cutoff")

	inverse := &fdr.PairwiseTarget{Metric: metric.Phi, Fdr: tableFrom(cutoffs, fdrs)}
	cutoff, found, err = SelectCutoffByFdr(inverse, 0.05, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.3, cutoff, "inverse: maximum qualifying cutoff")

	theta := &fdr.GroupDifferenceTarget{Fdr: tableFrom(cutoffs, fdrs)}
	cutoff, found, err = SelectCutoffByFdr(theta, 0.05, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.3, cutoff, "theta targets always take the maximum")
}

func TestSelectCutoffByFdrNotFound(t *testing.T) {
	target := &fdr.PairwiseTarget{
		Metric: metric.Rho,
		Fdr:    tableFrom([]float64{0.1, 0.2}, []float64{0.5, 0.9}),
	}
	_, found, err := SelectCutoffByFdr(target, 0.05, 1)
	require.NoError(t, err, "no qualifying cutoff is a sentinel, not an error")
	assert.False(t, found)

	allNaN := &fdr.PairwiseTarget{
		Metric: metric.Rho,
		Fdr:    tableFrom([]float64{0.1, 0.2, 0.3}, []float64{math.NaN(), math.NaN(), math.NaN()}),
	}
	_, found, err = SelectCutoffByFdr(allNaN, 0.05, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSelectCutoffByFdrNonFiniteNeverQualifies(t *testing.T) {
	target := &fdr.PairwiseTarget{
		Metric: metric.Rho,
		Fdr:    tableFrom([]float64{0.1, 0.2}, []float64{math.Inf(-1), 0.04}),
	}
	cutoff, found, err := SelectCutoffByFdr(target, 0.05, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.2, cutoff, "-Inf sorts under every threshold but is not finite")
}

func TestSelectCutoffByFdrSmoothing(t *testing.T) {
	// raw row 2 fails the bound but its window average passes
	cutoffs := []float64{0.1, 0.2, 0.3, 0.4}
	fdrs := []float64{0.01, 0.02, 0.07, 0.01}
	target := &fdr.GroupDifferenceTarget{Fdr: tableFrom(cutoffs, fdrs)}

	cutoff, found, err := SelectCutoffByFdr(target, 0.05, 3)
	require.NoError(t, err)
	require.True(t, found)
	// smoothed fdr[2] = mean(0.02, 0.07, 0.01) ~ 0.0333 <= 0.05
	assert.Equal(t, 0.4, cutoff)
}

func TestSelectCutoffByFdrIdempotent(t *testing.T) {
	target := &fdr.GroupDifferenceTarget{
		Fdr: tableFrom([]float64{0.1, 0.2, 0.3}, []float64{0.5, 0.03, 0.01}),
	}
	first, foundFirst, err := SelectCutoffByFdr(target, 0.05, 3)
	require.NoError(t, err)
	second, foundSecond, err := SelectCutoffByFdr(target, 0.05, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second, "selection must not mutate the table")
	assert.Equal(t, foundFirst, foundSecond)
}

func TestSelectCutoffByFdrValidation(t *testing.T) {
	empty := &fdr.PairwiseTarget{Metric: metric.Rho}
	_, _, err := SelectCutoffByFdr(empty, 0.05, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTableMissing, apperrors.GetCode(err))

	target := &fdr.PairwiseTarget{Metric: metric.Rho, Fdr: tableFrom([]float64{0.1}, []float64{0.01})}
	_, _, err = SelectCutoffByFdr(target, 1.5, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	_, _, err = SelectCutoffByFdr(target, -0.1, 1)
	require.Error(t, err)

	_, _, err = SelectCutoffByFdr(target, 0.05, 0)
	require.Error(t, err)
}

func TestSelectCutoffByFstatTheoretical(t *testing.T) {
	target := &fdr.GroupDifferenceTarget{
		Group: groupLabels(10, 10),
		Fstat: []float64{1, 2, 3},
	}

	pValue := 0.05
	cutoff, found, err := SelectCutoffByFstat(target, pValue, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Greater(t, cutoff, 0.0)
	assert.Less(t, cutoff, 1.0)

	// plugging the cutoff back into the inverse formula reproduces Q
	n := 20.0
	q := (n - 2) * (1 - cutoff) / cutoff
	dist := distuv.F{D1: 1, D2: n - 2}
	assert.InDelta(t, dist.Quantile(1-pValue), q, 1e-9)
}

func TestSelectCutoffByFstatDFAdjust(t *testing.T) {
	base := &fdr.GroupDifferenceTarget{Group: groupLabels(8, 8), Fstat: []float64{1}}
	adjusted := &fdr.GroupDifferenceTarget{Group: groupLabels(8, 8), Fstat: []float64{1}, DFAdjust: 4}

	baseCutoff, _, err := SelectCutoffByFstat(base, 0.05, false)
	require.NoError(t, err)
	adjCutoff, _, err := SelectCutoffByFstat(adjusted, 0.05, false)
	require.NoError(t, err)
	assert.NotEqual(t, baseCutoff, adjCutoff, "df adjustment must shift the cutoff")
}

func TestSelectCutoffByFstatEmpirical(t *testing.T) {
	target := &fdr.GroupDifferenceTarget{
		Group:   groupLabels(5, 5),
		Theta:   []float64{0.2, 0.5, 0.8},
		Fstat:   []float64{9, 4, 1},
		FdrPval: []float64{0.01, 0.04, 0.2},
	}

	cutoff, found, err := SelectCutoffByFstat(target, 0.05, true)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.5, cutoff, "maximum theta among qualifying rows")

	_, found, err = SelectCutoffByFstat(target, 0.001, true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSelectCutoffByFstatValidation(t *testing.T) {
	noFstat := &fdr.GroupDifferenceTarget{Group: groupLabels(5, 5)}
	_, _, err := SelectCutoffByFstat(noFstat, 0.05, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMissingColumn, apperrors.GetCode(err))

	target := &fdr.GroupDifferenceTarget{Group: groupLabels(5, 5), Fstat: []float64{1}}
	_, _, err = SelectCutoffByFstat(target, 1.2, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	oneGroup := &fdr.GroupDifferenceTarget{Group: []string{"a", "a"}, Fstat: []float64{1}}
	_, _, err = SelectCutoffByFstat(oneGroup, 0.05, false)
	require.Error(t, err)
}

func groupLabels(a, b int) []string {
	out := make([]string, 0, a+b)
	for i := 0; i < a; i++ {
		out = append(out, "a")
	}
	for i := 0; i < b; i++ {
		out = append(out, "b")
	}
	return out
}
