// Package fdr defines the FDR curve table and the two statistic targets it
// is built for: pairwise proportionality metrics and the group-difference
// theta family.
package fdr

import (
	"math"

	"github.com/suzannejin/propr/domain/core"
)

// Row is one point of the FDR curve: the candidate cutoff, the mean number
// of permuted values beyond it, the number of observed values beyond it,
// and their ratio.
type Row struct {
	Cutoff    float64 `json:"cutoff" db:"cutoff"`
	RandCount float64 `json:"randcount" db:"randcount"`
	TrueCount float64 `json:"truecount" db:"truecount"`
	FDR       float64 `json:"fdr" db:"fdr"`
}

// Table holds the per-cutoff FDR estimates of one curve construction run.
// It is rebuilt from scratch on every run; a target never accumulates rows
// across builds.
type Table struct {
	BuildID      core.BuildID   `json:"build_id"`
	DatasetID    core.DatasetID `json:"dataset_id"`
	BuiltAt      core.Timestamp `json:"built_at"`
	Permutations int            `json:"permutations"`
	Rows         []Row          `json:"rows"`
}

// NewTable stamps a fresh table with provenance metadata.
func NewTable(dataset core.DatasetID, permutations int, rows []Row) *Table {
	return &Table{
		BuildID:      core.NewBuildID(),
		DatasetID:    dataset,
		BuiltAt:      core.Now(),
		Permutations: permutations,
		Rows:         rows,
	}
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Cutoffs returns the cutoff column.
func (t *Table) Cutoffs() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Cutoff
	}
	return out
}

// FDRs returns the fdr column. NaN and Inf entries propagate as-is: a zero
// truecount yields NaN (0/0) or +Inf and must never be coerced to 0 or 1.
func (t *Table) FDRs() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.FDR
	}
	return out
}

// NewRow computes the FDR ratio for one cutoff. Division by a zero truecount
// deliberately produces NaN or Inf.
func NewRow(cutoff float64, randCount, trueCount float64) Row {
	return Row{
		Cutoff:    cutoff,
		RandCount: randCount,
		TrueCount: trueCount,
		FDR:       randCount / trueCount,
	}
}

// FiniteFDRCount returns how many rows carry a finite FDR estimate.
func (t *Table) FiniteFDRCount() int {
	n := 0
	for _, r := range t.Rows {
		if !math.IsNaN(r.FDR) && !math.IsInf(r.FDR, 0) {
			n++
		}
	}
	return n
}
