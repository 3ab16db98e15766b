// Package testkit provides deterministic fixtures for the FDR core: an
// in-memory ledger, stand-in statistic engines, and synthetic dataset
// generators. The engines here are test doubles, not proportionality
// implementations.
package testkit

import (
	"context"
	"math/rand"
	"sync"

	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/domain/fdr"
	"github.com/suzannejin/propr/internal/errors"
	"github.com/suzannejin/propr/ports"
)

// InMemoryLedger implements ports.FdrLedger for tests.
type InMemoryLedger struct {
	mu      sync.Mutex
	tables  map[core.BuildID]*fdr.Table
	cutoffs []ports.CutoffRecord
}

// NewInMemoryLedger creates an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{tables: make(map[core.BuildID]*fdr.Table)}
}

func (l *InMemoryLedger) SaveTable(_ context.Context, _ fdr.TargetKind, table *fdr.Table) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tables[table.BuildID] = table
	return nil
}

func (l *InMemoryLedger) GetTable(_ context.Context, buildID core.BuildID) (*fdr.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	table, ok := l.tables[buildID]
	if !ok {
		return nil, errors.New(errors.CodeTableMissing, "table not found: "+buildID.String())
	}
	return table, nil
}

func (l *InMemoryLedger) SaveCutoff(_ context.Context, record ports.CutoffRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cutoffs = append(l.cutoffs, record)
	return nil
}

// Cutoffs returns a copy of the recorded cutoff selections.
func (l *InMemoryLedger) Cutoffs() []ports.CutoffRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ports.CutoffRecord, len(l.cutoffs))
	copy(out, l.cutoffs)
	return out
}

// TableCount returns how many tables were persisted.
func (l *InMemoryLedger) TableCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tables)
}

// RandomCountMatrix generates a samples x features matrix of positive
// pseudo-counts from a seeded source.
func RandomCountMatrix(seed int64, samples, features int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	matrix := make([][]float64, samples)
	for i := range matrix {
		row := make([]float64, features)
		for j := range row {
			row[j] = float64(rng.Intn(500) + 1)
		}
		matrix[i] = row
	}
	return matrix
}

// ShuffledCopies returns p copies of counts with the cells of each row
// independently shuffled, mimicking the permutation set a pairwise target
// owns. Every row keeps its original values, only their order changes.
func ShuffledCopies(seed int64, counts [][]float64, p int) [][][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][][]float64, p)
	for k := range out {
		shuffled := make([][]float64, len(counts))
		for i, row := range counts {
			cp := make([]float64, len(row))
			copy(cp, row)
			rng.Shuffle(len(cp), func(a, b int) { cp[a], cp[b] = cp[b], cp[a] })
			shuffled[i] = cp
		}
		out[k] = shuffled
	}
	return out
}

// PermutationIndexes returns p permutations of the sample order 0..n-1.
func PermutationIndexes(seed int64, n, p int) [][]int {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]int, p)
	for k := range out {
		out[k] = rng.Perm(n)
	}
	return out
}
