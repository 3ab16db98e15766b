// Package app orchestrates FDR curve construction and cutoff selection over
// the two statistic target shapes.
package app

import (
	"context"

	"github.com/suzannejin/propr/domain/fdr"
)

// BuildOptions configures one curve construction run.
type BuildOptions struct {
	// Cutoffs is an explicit cutoff sequence, used verbatim when set (no
	// sorting or dedup is imposed). nil triggers the quantile auto-grid.
	// The single-NaN skip sentinel short-circuits the whole build.
	Cutoffs []float64

	// NBins is the number of quantile bins for the auto-grid (default 1000,
	// producing NBins+1 cutoffs).
	NBins int

	// Workers is the concurrency degree for the pairwise builder; 1 runs
	// sequentially. The group-difference builder is always sequential.
	Workers int

	// ProgressEvery controls how often sequential loops log progress.
	ProgressEvery int
}

const (
	defaultNBins         = 1000
	defaultProgressEvery = 10
)

func (o BuildOptions) withDefaults() BuildOptions {
	if o.NBins <= 0 {
		o.NBins = defaultNBins
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = defaultProgressEvery
	}
	return o
}

// CurveBuilder populates the FDR table slot of one statistic target. The two
// implementations share the directional counting and grid machinery but
// differ in how a permutation is replayed through the statistic engine.
type CurveBuilder interface {
	Kind() fdr.TargetKind
	BuildCurve(ctx context.Context, opts BuildOptions) (*fdr.Table, error)
}
