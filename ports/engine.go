// Package ports declares the interfaces the FDR core consumes and exposes.
// The statistic engines are external collaborators: the core never computes
// phi, rho or theta itself, it only replays a deterministic recomputation
// over pre-generated permutations.
package ports

import (
	"context"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/domain/metric"
)

// PairwiseConfig carries the exact configuration the observed statistic was
// computed with, so the permuted recomputations stay comparable. Nested
// permutation is always disabled on this path.
type PairwiseConfig struct {
	Metric      metric.Metric
	Symmetrized bool
	IVar        string
	Alpha       float64
}

// PairwiseEngine recomputes a pairwise proportionality statistic over a
// count matrix. Implementations must be deterministic given identical inputs
// and must not permute internally.
type PairwiseEngine interface {
	Recompute(ctx context.Context, counts [][]float64, cfg PairwiseConfig) ([]float64, error)
}

// ThetaConfig mirrors the group-difference construction parameters.
type ThetaConfig struct {
	Group    []string
	Alpha    float64
	Weighted bool
}

// ThetaEngine recomputes differential-proportionality theta statistics.
type ThetaEngine interface {
	// RecomputeTheta computes the non-moderated theta variant over counts.
	// lrv is the log-ratio variance structure of the ORIGINAL, unshuffled
	// counts and is passed through as a fixed normalization input: only the
	// permutation-dependent numerator varies between calls.
	RecomputeTheta(ctx context.Context, variant fdr.ThetaKind, counts [][]float64, cfg ThetaConfig, lrv []float64) ([]float64, error)

	// RecomputeModerated re-runs the full construction pipeline on counts
	// with cfg and applies the previously configured moderation step.
	RecomputeModerated(ctx context.Context, counts [][]float64, cfg ThetaConfig) ([]float64, error)
}
