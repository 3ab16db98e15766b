package ports

import (
	"context"

	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/domain/fdr"
)

// CutoffRecord stores one cutoff selection against the table it was made on.
type CutoffRecord struct {
	BuildID   core.BuildID `db:"build_id"`
	Method    string       `db:"method"` // "fdr" or "fstat"
	Threshold float64      `db:"threshold"`
	Cutoff    float64      `db:"cutoff"`
	Found     bool         `db:"found"`
}

// FdrLedger persists built FDR tables and the cutoffs selected from them.
// Persistence is optional; services treat a nil ledger as "keep in memory
// only".
type FdrLedger interface {
	SaveTable(ctx context.Context, kind fdr.TargetKind, table *fdr.Table) error
	GetTable(ctx context.Context, buildID core.BuildID) (*fdr.Table, error)
	SaveCutoff(ctx context.Context, record CutoffRecord) error
}
