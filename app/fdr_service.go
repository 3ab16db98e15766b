package app

import (
	"context"

	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/internal"
	"github.com/suzannejin/propr/internal/analysis"
	"github.com/suzannejin/propr/internal/config"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/ports"
)

// FdrService is the application-level entry point: it dispatches curve
// construction to the right builder for a target, applies configured
// defaults, and optionally persists results to a ledger.
type FdrService struct {
	pairwiseEngine ports.PairwiseEngine
	thetaEngine    ports.ThetaEngine
	ledger         ports.FdrLedger // nil keeps results in memory only
	cfg            config.FdrConfig
	log            *internal.Logger
}

// NewFdrService creates the service. Either engine may be nil when the
// corresponding target kind is never used.
func NewFdrService(pairwiseEngine ports.PairwiseEngine, thetaEngine ports.ThetaEngine, ledger ports.FdrLedger, cfg config.FdrConfig) *FdrService {
	return &FdrService{
		pairwiseEngine: pairwiseEngine,
		thetaEngine:    thetaEngine,
		ledger:         ledger,
		cfg:            cfg,
		log:            internal.DefaultLogger,
	}
}

// BuildFdrCurve builds (or rebuilds) the FDR table of target. Zero-valued
// options fall back to the configured defaults.
func (s *FdrService) BuildFdrCurve(ctx context.Context, target fdr.Target, opts BuildOptions) (*fdr.Table, error) {
	if opts.NBins <= 0 {
		opts.NBins = s.cfg.NBins
	}
	if opts.Workers <= 0 {
		opts.Workers = s.cfg.Workers
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = s.cfg.ProgressEvery
	}

	summary := analysis.Summarize(target.Observed())
	s.log.Info("building FDR curve for %s target: %d statistic values (%d finite), range [%g, %g]",
		target.Kind(), summary.N, summary.Finite, summary.Min, summary.Max)

	builder, err := s.builderFor(target)
	if err != nil {
		return nil, err
	}
	table, err := builder.BuildCurve(ctx, opts)
	if err != nil {
		return nil, err
	}

	if s.ledger != nil && !table.IsEmpty() {
		if err := s.ledger.SaveTable(ctx, target.Kind(), table); err != nil {
			return nil, errors.Wrap(err, "failed to persist FDR table")
		}
	}
	return table, nil
}

// SelectCutoffByFdr selects a cutoff from the target's built table and
// records the decision in the ledger when one is configured.
func (s *FdrService) SelectCutoffByFdr(ctx context.Context, target fdr.Target, fdrThreshold float64, windowSize int) (float64, bool, error) {
	cutoff, found, err := SelectCutoffByFdr(target, fdrThreshold, windowSize)
	if err != nil {
		return 0, false, err
	}
	if s.ledger != nil {
		record := ports.CutoffRecord{
			BuildID:   target.Table().BuildID,
			Method:    "fdr",
			Threshold: fdrThreshold,
			Cutoff:    cutoff,
			Found:     found,
		}
		if err := s.ledger.SaveCutoff(ctx, record); err != nil {
			return 0, false, errors.Wrap(err, "failed to persist cutoff selection")
		}
	}
	return cutoff, found, nil
}

// SelectCutoffByFstat selects a theta cutoff from the F-statistic
// parameterization of a group-difference target.
func (s *FdrService) SelectCutoffByFstat(ctx context.Context, target *fdr.GroupDifferenceTarget, pValue float64, useFdrAdjusted bool) (float64, bool, error) {
	cutoff, found, err := SelectCutoffByFstat(target, pValue, useFdrAdjusted)
	if err != nil {
		return 0, false, err
	}
	if s.ledger != nil && !target.Table().IsEmpty() {
		record := ports.CutoffRecord{
			BuildID:   target.Table().BuildID,
			Method:    "fstat",
			Threshold: pValue,
			Cutoff:    cutoff,
			Found:     found,
		}
		if err := s.ledger.SaveCutoff(ctx, record); err != nil {
			return 0, false, errors.Wrap(err, "failed to persist cutoff selection")
		}
	}
	return cutoff, found, nil
}

// builderFor dispatches on the target's kind discriminant.
func (s *FdrService) builderFor(target fdr.Target) (CurveBuilder, error) {
	switch target.Kind() {
	case fdr.KindPairwise:
		pairwise, ok := target.(*fdr.PairwiseTarget)
		if !ok || s.pairwiseEngine == nil {
			return nil, errors.InternalError("pairwise target without a pairwise engine")
		}
		return NewPairwiseCurveBuilder(pairwise, s.pairwiseEngine), nil
	case fdr.KindGroupDifference:
		groupDiff, ok := target.(*fdr.GroupDifferenceTarget)
		if !ok || s.thetaEngine == nil {
			return nil, errors.InternalError("group-difference target without a theta engine")
		}
		return NewGroupDifferenceCurveBuilder(groupDiff, s.thetaEngine), nil
	default:
		return nil, errors.InvalidInput("unknown target kind " + string(target.Kind()))
	}
}
