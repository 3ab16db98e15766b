package fdr

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/domain/metric"
)

func TestNewRowPropagatesNonFinite(t *testing.T) {
	zero := NewRow(0.5, 0, 0)
	assert.True(t, math.IsNaN(zero.FDR), "0/0 must stay NaN")

	inf := NewRow(0.5, 3, 0)
	assert.True(t, math.IsInf(inf.FDR, 1), "x/0 must stay +Inf")

	ok := NewRow(0.5, 1, 4)
	assert.Equal(t, 0.25, ok.FDR)
}

func TestTableColumnsAndCounts(t *testing.T) {
	table := NewTable("dataset-a", 10, []Row{
		NewRow(0.1, 4, 8),
		NewRow(0.2, 0, 0),
		NewRow(0.3, 1, 0),
	})

	assert.False(t, table.IsEmpty())
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, table.Cutoffs())
	assert.Equal(t, 1, table.FiniteFDRCount())
	assert.Equal(t, 10, table.Permutations)
	assert.Equal(t, core.DatasetID("dataset-a"), table.DatasetID)
	assert.False(t, table.BuildID.String() == "")
}

func TestTableJSONRoundTrip(t *testing.T) {
	table := NewTable("dataset-b", 5, []Row{
		NewRow(0.1, 1, 2),
		NewRow(0.2, 3, 4),
	})

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var restored Table
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, table.BuildID, restored.BuildID)
	assert.Equal(t, table.DatasetID, restored.DatasetID)
	assert.Equal(t, table.Permutations, restored.Permutations)
	assert.True(t, table.BuiltAt.Time().Equal(restored.BuiltAt.Time()))
	assert.Equal(t, table.Rows, restored.Rows)
}

func TestEmptyTable(t *testing.T) {
	var table *Table
	assert.True(t, table.IsEmpty())
	assert.True(t, NewTable("", 0, nil).IsEmpty())
}

func TestTargetDirections(t *testing.T) {
	rho := &PairwiseTarget{Metric: metric.Rho}
	phi := &PairwiseTarget{Metric: metric.Phi}
	theta := &GroupDifferenceTarget{Active: ThetaD}

	assert.True(t, rho.Direct())
	assert.False(t, phi.Direct())
	assert.False(t, theta.Direct())

	assert.Equal(t, KindPairwise, rho.Kind())
	assert.Equal(t, KindGroupDifference, theta.Kind())
}

func TestShuffleRows(t *testing.T) {
	target := &GroupDifferenceTarget{
		Counts: [][]float64{{1, 1}, {2, 2}, {3, 3}},
	}
	shuffled := target.ShuffleRows([]int{2, 0, 1})
	assert.Equal(t, [][]float64{{3, 3}, {1, 1}, {2, 2}}, shuffled)
	// the original stays untouched
	assert.Equal(t, [][]float64{{1, 1}, {2, 2}, {3, 3}}, target.Counts)
}

func TestGroups(t *testing.T) {
	target := &GroupDifferenceTarget{Group: []string{"a", "b", "a", "c", "b"}}
	assert.Equal(t, []string{"a", "b", "c"}, target.Groups())
}
