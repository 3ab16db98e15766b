package app

import (
	"context"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/internal"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/internal/exceed"
	"github.com/suzannejin/propr/internal/grid"
	"github.com/suzannejin/propr/ports"
)

// GroupDifferenceCurveBuilder estimates the FDR curve for a theta target.
// Each permutation reorders the sample rows of the count matrix; the active
// theta variant is then recomputed against the original group assignment.
// Theta is inverted relative to the pairwise case, so exceedance is always
// "less than" regardless of cutoff sign.
//
// This path runs strictly sequentially. A concurrency request above 1 is
// acknowledged with an informational notice and ignored.
type GroupDifferenceCurveBuilder struct {
	target *fdr.GroupDifferenceTarget
	engine ports.ThetaEngine
	log    *internal.Logger
}

// NewGroupDifferenceCurveBuilder wires a builder to its target and engine.
func NewGroupDifferenceCurveBuilder(target *fdr.GroupDifferenceTarget, engine ports.ThetaEngine) *GroupDifferenceCurveBuilder {
	return &GroupDifferenceCurveBuilder{
		target: target,
		engine: engine,
		log:    internal.DefaultLogger,
	}
}

func (b *GroupDifferenceCurveBuilder) Kind() fdr.TargetKind { return fdr.KindGroupDifference }

// BuildCurve computes a fresh FDR table and replaces the target's table slot.
func (b *GroupDifferenceCurveBuilder) BuildCurve(ctx context.Context, opts BuildOptions) (*fdr.Table, error) {
	opts = opts.withDefaults()

	if grid.IsSkipSentinel(opts.Cutoffs) {
		b.log.Debug("cutoff skip sentinel received; leaving FDR table unchanged")
		return b.target.Fdr, nil
	}
	if !b.target.HasPermutations() {
		return nil, errors.FdrDisabled()
	}
	if opts.Workers > 1 {
		b.log.Info("parallel execution is not supported for group-difference targets; running sequentially")
	}
	if b.target.Active == fdr.ThetaMod && !b.target.Moderated {
		return nil, errors.ModerationMissing()
	}

	cutoffs := opts.Cutoffs
	if cutoffs == nil {
		built, err := grid.Build(b.target.Theta, opts.NBins)
		if err != nil {
			return nil, errors.Wrap(err, "auto cutoff grid failed")
		}
		cutoffs = built
	}

	cfg := ports.ThetaConfig{
		Group:    b.target.Group,
		Alpha:    b.target.Alpha,
		Weighted: b.target.Weighted,
	}

	totals := make([]int64, len(cutoffs))
	for k, perm := range b.target.PermIndex {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shuffled := b.target.ShuffleRows(perm)

		var thetas []float64
		var err error
		if b.target.Active == fdr.ThetaMod {
			// Moderation re-runs the full construction pipeline on the
			// shuffled counts before applying the moderation step.
			thetas, err = b.engine.RecomputeModerated(ctx, shuffled, cfg)
		} else {
			// The log-ratio variance structure stays the one computed from
			// the unshuffled counts: only the numerator follows the
			// permutation.
			thetas, err = b.engine.RecomputeTheta(ctx, b.target.Active, shuffled, cfg, b.target.LRV)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "theta recomputation failed on permutation %d", k)
		}

		for i, cutoff := range cutoffs {
			totals[i] += int64(exceed.CountLessThan(thetas, cutoff))
		}
		if (k+1)%opts.ProgressEvery == 0 {
			b.log.Debug("theta FDR progress: %d/%d", k+1, len(b.target.PermIndex))
		}
	}

	p := float64(len(b.target.PermIndex))
	rows := make([]fdr.Row, len(cutoffs))
	for i, cutoff := range cutoffs {
		randCount := float64(totals[i]) / p
		trueCount := float64(exceed.CountLessThan(b.target.Theta, cutoff))
		rows[i] = fdr.NewRow(cutoff, randCount, trueCount)
	}

	table := fdr.NewTable(b.target.Dataset(), len(b.target.PermIndex), rows)
	b.target.SetTable(table)
	return table, nil
}
