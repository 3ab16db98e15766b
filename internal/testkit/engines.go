package testkit

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/ports"
)

// CorrelationEngine is a pairwise stand-in engine: the "statistic" for each
// feature pair is the Pearson correlation of their columns. Deterministic
// given identical inputs, which is all the curve builder requires.
type CorrelationEngine struct{}

func (CorrelationEngine) Recompute(_ context.Context, counts [][]float64, _ ports.PairwiseConfig) ([]float64, error) {
	if len(counts) == 0 {
		return nil, nil
	}
	features := len(counts[0])
	columns := make([][]float64, features)
	for j := 0; j < features; j++ {
		col := make([]float64, len(counts))
		for i := range counts {
			col[i] = counts[i][j]
		}
		columns[j] = col
	}

	// lower triangle, column-major like the observed statistic vector
	var out []float64
	for j := 0; j < features; j++ {
		for i := j + 1; i < features; i++ {
			out = append(out, stat.Correlation(columns[i], columns[j], nil))
		}
	}
	return out, nil
}

// MeanGapThetaEngine is a theta stand-in: each pair's "theta" shrinks as the
// between-group gap of the pair's summed counts grows. It records the lrv
// slice it was handed so tests can assert the fixed-normalization contract.
type MeanGapThetaEngine struct {
	LastLRV []float64
}

func (e *MeanGapThetaEngine) RecomputeTheta(_ context.Context, _ fdr.ThetaKind, counts [][]float64, cfg ports.ThetaConfig, lrv []float64) ([]float64, error) {
	e.LastLRV = lrv
	return e.thetas(counts, cfg), nil
}

func (e *MeanGapThetaEngine) RecomputeModerated(_ context.Context, counts [][]float64, cfg ports.ThetaConfig) ([]float64, error) {
	return e.thetas(counts, cfg), nil
}

func (e *MeanGapThetaEngine) thetas(counts [][]float64, cfg ports.ThetaConfig) []float64 {
	if len(counts) == 0 {
		return nil
	}
	features := len(counts[0])
	groups := map[string]bool{}
	for _, g := range cfg.Group {
		groups[g] = true
	}
	if len(groups) < 2 {
		return make([]float64, features*(features-1)/2)
	}

	// two-group gap per feature: |mean(first group) - mean(rest)|
	gap := make([]float64, features)
	first := cfg.Group[0]
	for j := 0; j < features; j++ {
		var sumA, nA, sumB, nB float64
		for i := range counts {
			if cfg.Group[i] == first {
				sumA += counts[i][j]
				nA++
			} else {
				sumB += counts[i][j]
				nB++
			}
		}
		gap[j] = math.Abs(sumA/nA - sumB/nB)
	}

	var out []float64
	for j := 0; j < features; j++ {
		for i := j + 1; i < features; i++ {
			out = append(out, 1/(1+gap[i]+gap[j]))
		}
	}
	return out
}
