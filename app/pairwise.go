package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/domain/metric"
	"github.com/suzannejin/propr/internal"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/internal/exceed"
	"github.com/suzannejin/propr/internal/grid"
	"github.com/suzannejin/propr/ports"
)

// PairwiseCurveBuilder estimates the FDR curve for a pairwise
// proportionality target by replaying the statistic engine over every
// permuted count matrix and counting directional exceedances per cutoff.
type PairwiseCurveBuilder struct {
	target *fdr.PairwiseTarget
	engine ports.PairwiseEngine
	log    *internal.Logger
}

// NewPairwiseCurveBuilder wires a builder to its target and engine.
func NewPairwiseCurveBuilder(target *fdr.PairwiseTarget, engine ports.PairwiseEngine) *PairwiseCurveBuilder {
	return &PairwiseCurveBuilder{
		target: target,
		engine: engine,
		log:    internal.DefaultLogger,
	}
}

func (b *PairwiseCurveBuilder) Kind() fdr.TargetKind { return fdr.KindPairwise }

// BuildCurve computes a fresh FDR table and replaces the target's table slot.
// The single-NaN cutoff sentinel skips the build and leaves the target
// unchanged.
func (b *PairwiseCurveBuilder) BuildCurve(ctx context.Context, opts BuildOptions) (*fdr.Table, error) {
	opts = opts.withDefaults()

	if grid.IsSkipSentinel(opts.Cutoffs) {
		b.log.Debug("cutoff skip sentinel received; leaving FDR table unchanged")
		return b.target.Fdr, nil
	}
	if !b.target.HasPermutations() {
		return nil, errors.FdrDisabled()
	}
	b.adviseOnMetric()

	cutoffs := opts.Cutoffs
	if cutoffs == nil {
		built, err := grid.Build(b.target.Stats, opts.NBins)
		if err != nil {
			return nil, errors.Wrap(err, "auto cutoff grid failed")
		}
		cutoffs = built
	}

	totals, err := b.permutedExceedances(ctx, cutoffs, opts)
	if err != nil {
		return nil, err
	}

	direct := b.target.Direct()
	p := float64(len(b.target.Permutations))
	rows := make([]fdr.Row, len(cutoffs))
	for i, cutoff := range cutoffs {
		randCount := float64(totals[i]) / p
		trueCount := float64(exceed.CountBeyond(b.target.Stats, cutoff, direct))
		rows[i] = fdr.NewRow(cutoff, randCount, trueCount)
	}

	table := fdr.NewTable(b.target.Dataset(), len(b.target.Permutations), rows)
	b.target.SetTable(table)
	return table, nil
}

// permutedExceedances sums per-cutoff exceedance counts over all permuted
// datasets. Workers receive disjoint contiguous slices of the permutation
// list and accumulate into private vectors; the merge is a plain integer sum
// after the group joins, so worker scheduling cannot affect the result and
// the parallel path is bit-identical to the sequential one.
func (b *PairwiseCurveBuilder) permutedExceedances(ctx context.Context, cutoffs []float64, opts BuildOptions) ([]int64, error) {
	permutations := b.target.Permutations
	workers := opts.Workers
	if workers > len(permutations) {
		workers = len(permutations)
	}

	cfg := ports.PairwiseConfig{
		Metric:      b.target.Metric,
		Symmetrized: b.target.Symmetrized,
		IVar:        b.target.IVar,
		Alpha:       b.target.Alpha,
	}
	direct := b.target.Direct()

	perWorker := make([][]int64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * len(permutations) / workers
		end := (w + 1) * len(permutations) / workers
		perWorker[w] = make([]int64, len(cutoffs))

		g.Go(func() error {
			for k := start; k < end; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				stats, err := b.engine.Recompute(gctx, permutations[k], cfg)
				if err != nil {
					return errors.Wrapf(err, "statistic recomputation failed on permutation %d", k)
				}
				for i, cutoff := range cutoffs {
					perWorker[w][i] += int64(exceed.CountBeyond(stats, cutoff, direct))
				}
				if workers == 1 && (k+1)%opts.ProgressEvery == 0 {
					b.log.Debug("permutation FDR progress: %d/%d", k+1, len(permutations))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := make([]int64, len(cutoffs))
	for _, counts := range perWorker {
		for i, c := range counts {
			totals[i] += c
		}
	}
	return totals, nil
}

// adviseOnMetric surfaces the metric-specific caveats of permutation FDR
// estimation. These are advisory only and never block the build.
func (b *PairwiseCurveBuilder) adviseOnMetric() {
	m := b.target.Metric
	if m == metric.Rho && !b.target.Symmetrized {
		b.log.Warn("rho without symmetrization only reliably estimates FDR for positively proportional pairs")
	}
	if m.IsAsymmetric() && !b.target.Symmetrized && m.HasSymmetricVariant() {
		b.log.Info("metric %s is asymmetric; consider its symmetric variant for FDR estimation", m)
	}
}
