// Package postgres persists FDR tables and cutoff selections.
package postgres

import (
	"context"
	"database/sql"
	"math"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/ports"
)

// FdrLedgerImpl implements ports.FdrLedger for PostgreSQL
type FdrLedgerImpl struct {
	db *sqlx.DB
}

// NewFdrLedger creates a new PostgreSQL FDR ledger
func NewFdrLedger(db *sqlx.DB) ports.FdrLedger {
	return &FdrLedgerImpl{db: db}
}

// Connect opens a ledger against databaseURL, verifies the connection and
// ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (ports.FdrLedger, *sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to the FDR ledger database")
	}
	ledger := &FdrLedgerImpl{db: db}
	if err := ledger.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return ledger, db, nil
}

// EnsureSchema creates the ledger tables when they do not exist yet.
func (l *FdrLedgerImpl) EnsureSchema(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fdr_tables (
			build_id     TEXT PRIMARY KEY,
			dataset_id   TEXT NOT NULL DEFAULT '',
			target_kind  TEXT NOT NULL,
			permutations INTEGER NOT NULL,
			built_at     TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fdr_rows (
			build_id  TEXT NOT NULL REFERENCES fdr_tables(build_id) ON DELETE CASCADE,
			position  INTEGER NOT NULL,
			cutoff    DOUBLE PRECISION NOT NULL,
			randcount DOUBLE PRECISION NOT NULL,
			truecount DOUBLE PRECISION NOT NULL,
			fdr       DOUBLE PRECISION,
			PRIMARY KEY (build_id, position)
		);
		CREATE TABLE IF NOT EXISTS fdr_cutoffs (
			id        BIGSERIAL PRIMARY KEY,
			build_id  TEXT NOT NULL,
			method    TEXT NOT NULL,
			threshold DOUBLE PRECISION NOT NULL,
			cutoff    DOUBLE PRECISION NOT NULL,
			found     BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return errors.Wrap(err, "failed to ensure FDR ledger schema")
	}
	return nil
}

// SaveTable stores the table header and its rows in one transaction. NaN and
// Inf FDR estimates are stored as NULL and restored as NaN on load.
func (l *FdrLedgerImpl) SaveTable(ctx context.Context, kind fdr.TargetKind, table *fdr.Table) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin ledger transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fdr_tables (build_id, dataset_id, target_kind, permutations, built_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (build_id) DO UPDATE SET
			dataset_id = EXCLUDED.dataset_id,
			target_kind = EXCLUDED.target_kind,
			permutations = EXCLUDED.permutations,
			built_at = EXCLUDED.built_at`,
		table.BuildID.String(), table.DatasetID.String(), string(kind), table.Permutations, table.BuiltAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to save FDR table header")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fdr_rows WHERE build_id = $1`, table.BuildID.String()); err != nil {
		return errors.Wrap(err, "failed to clear previous FDR rows")
	}
	for i, row := range table.Rows {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fdr_rows (build_id, position, cutoff, randcount, truecount, fdr)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			table.BuildID.String(), i, row.Cutoff, row.RandCount, row.TrueCount, nullableFloat(row.FDR))
		if err != nil {
			return errors.Wrap(err, "failed to save FDR row")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit FDR table")
	}
	return nil
}

// GetTable restores a previously saved table by build ID.
func (l *FdrLedgerImpl) GetTable(ctx context.Context, buildID core.BuildID) (*fdr.Table, error) {
	var header struct {
		BuildID      string       `db:"build_id"`
		DatasetID    string       `db:"dataset_id"`
		Permutations int          `db:"permutations"`
		BuiltAt      sql.NullTime `db:"built_at"`
	}
	err := l.db.GetContext(ctx, &header, `
		SELECT build_id, dataset_id, permutations, built_at FROM fdr_tables WHERE build_id = $1`,
		buildID.String())
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.CodeTableMissing, "no FDR table stored for build "+buildID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load FDR table header")
	}

	var stored []struct {
		Cutoff    float64         `db:"cutoff"`
		RandCount float64         `db:"randcount"`
		TrueCount float64         `db:"truecount"`
		FDR       sql.NullFloat64 `db:"fdr"`
	}
	err = l.db.SelectContext(ctx, &stored, `
		SELECT cutoff, randcount, truecount, fdr FROM fdr_rows
		WHERE build_id = $1 ORDER BY position`,
		buildID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load FDR rows")
	}

	rows := make([]fdr.Row, len(stored))
	for i, s := range stored {
		rows[i] = fdr.NewRow(s.Cutoff, s.RandCount, s.TrueCount)
		if !s.FDR.Valid {
			continue // NewRow already recomputed the NaN/Inf ratio
		}
		rows[i].FDR = s.FDR.Float64
	}

	table := &fdr.Table{
		BuildID:      buildID,
		DatasetID:    core.DatasetID(header.DatasetID),
		Permutations: header.Permutations,
		Rows:         rows,
	}
	if header.BuiltAt.Valid {
		table.BuiltAt = core.NewTimestamp(header.BuiltAt.Time)
	}
	return table, nil
}

// SaveCutoff appends one cutoff selection record.
func (l *FdrLedgerImpl) SaveCutoff(ctx context.Context, record ports.CutoffRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO fdr_cutoffs (build_id, method, threshold, cutoff, found)
		VALUES ($1, $2, $3, $4, $5)`,
		record.BuildID.String(), record.Method, record.Threshold, record.Cutoff, record.Found)
	if err != nil {
		return errors.Wrap(err, "failed to save cutoff record")
	}
	return nil
}

// nullableFloat maps non-finite estimates to NULL for storage.
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
