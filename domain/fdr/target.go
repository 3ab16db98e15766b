package fdr

import (
	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/domain/metric"
)

// TargetKind discriminates the two statistic shapes an FDR curve can be
// built for.
type TargetKind string

const (
	KindPairwise        TargetKind = "pairwise"
	KindGroupDifference TargetKind = "group_difference"
)

// ThetaKind names a differential-proportionality variant.
type ThetaKind string

const (
	ThetaD   ThetaKind = "theta_d"
	ThetaE   ThetaKind = "theta_e"
	ThetaF   ThetaKind = "theta_f"
	ThetaMod ThetaKind = "theta_mod"
)

// Target is the read surface the curve builder and cutoff selector share.
// Implementations own their statistic vector, permutation data and the FDR
// table slot; the builder replaces the slot wholesale on every run.
type Target interface {
	Kind() TargetKind
	// Direct reports whether large statistic values indicate significance.
	Direct() bool
	// Observed returns the true statistic vector the curve is judged against.
	Observed() []float64
	// Dataset identifies the count matrix the statistic came from.
	Dataset() core.DatasetID
	Table() *Table
	SetTable(*Table)
}

// PairwiseTarget carries an observed pairwise proportionality statistic and
// the permuted count matrices generated alongside it at construction time.
// All fields are treated as read-only by the curve builder except the table
// slot.
type PairwiseTarget struct {
	Metric      metric.Metric
	Symmetrized bool
	IVar        string  // reference choice forwarded verbatim to the engine
	Alpha       float64 // Box-Cox alpha forwarded verbatim to the engine

	// DatasetID identifies the count matrix the statistic was computed from.
	DatasetID core.DatasetID

	// Stats is the observed statistic, flattened from the lower triangle of
	// the symmetric pairwise matrix.
	Stats []float64

	// Permutations holds P independently shuffled count matrices
	// (samples x features). Empty means permutation testing was disabled.
	Permutations [][][]float64

	Fdr *Table
}

func (t *PairwiseTarget) Kind() TargetKind { return KindPairwise }

func (t *PairwiseTarget) Direct() bool { return t.Metric.IsDirect() }

func (t *PairwiseTarget) Observed() []float64 { return t.Stats }

func (t *PairwiseTarget) Dataset() core.DatasetID { return t.DatasetID }

func (t *PairwiseTarget) Table() *Table { return t.Fdr }

func (t *PairwiseTarget) SetTable(table *Table) { t.Fdr = table }

// HasPermutations reports whether permutation testing was enabled at
// construction time.
func (t *PairwiseTarget) HasPermutations() bool {
	return len(t.Permutations) > 0
}

// GroupDifferenceTarget carries an observed theta statistic, the count matrix
// it was computed from, and a matrix of row permutations.
type GroupDifferenceTarget struct {
	Active   ThetaKind
	Counts   [][]float64 // samples x features
	Group    []string    // per-sample group labels
	Alpha    float64
	Weighted bool

	// DatasetID identifies the count matrix the statistic was computed from.
	DatasetID core.DatasetID

	// LRV is the per-pair log-ratio variance structure computed from the
	// unshuffled counts. Non-moderated recomputation keeps it as a fixed
	// normalization input while only the permuted numerator varies.
	LRV []float64

	// Theta is the observed active theta vector.
	Theta []float64

	// PermIndex holds P permutations of the sample order, one per entry;
	// each permutation is applied to the rows of Counts before the theta
	// recomputation. Empty means permutation testing was disabled.
	PermIndex [][]int

	// Moderated records whether the moderation step was configured, which
	// the theta_mod recomputation path requires.
	Moderated bool

	// Fstat and FdrPval are attached externally by the F-statistic step;
	// both are nil until then.
	Fstat   []float64
	FdrPval []float64
	// DFAdjust is the degrees-of-freedom adjustment added to the sample
	// count in the theoretical F cutoff.
	DFAdjust float64

	Fdr *Table
}

func (t *GroupDifferenceTarget) Kind() TargetKind { return KindGroupDifference }

// Direct is always false: small theta marks a significant pair.
func (t *GroupDifferenceTarget) Direct() bool { return false }

func (t *GroupDifferenceTarget) Observed() []float64 { return t.Theta }

func (t *GroupDifferenceTarget) Dataset() core.DatasetID { return t.DatasetID }

func (t *GroupDifferenceTarget) Table() *Table { return t.Fdr }

func (t *GroupDifferenceTarget) SetTable(table *Table) { t.Fdr = table }

// HasPermutations reports whether a permutation index matrix is present.
func (t *GroupDifferenceTarget) HasPermutations() bool {
	return len(t.PermIndex) > 0
}

// ShuffleRows returns a copy of the counts with rows reordered by perm.
func (t *GroupDifferenceTarget) ShuffleRows(perm []int) [][]float64 {
	shuffled := make([][]float64, len(perm))
	for i, src := range perm {
		shuffled[i] = t.Counts[src]
	}
	return shuffled
}

// Groups returns the distinct group labels in first-seen order.
func (t *GroupDifferenceTarget) Groups() []string {
	seen := make(map[string]bool, 4)
	var out []string
	for _, g := range t.Group {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
