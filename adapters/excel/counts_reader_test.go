package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSVCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counts.csv")
	content := "sample,geneA,geneB,geneC\ns1,10,0,3\ns2,7,2,9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	matrix, err := NewCountsReader(path).Read()
	require.NoError(t, err)

	assert.NotEmpty(t, matrix.ID.String(), "each read mints a dataset identifier")
	assert.Equal(t, []string{"geneA", "geneB", "geneC"}, matrix.Features)
	assert.Equal(t, []string{"s1", "s2"}, matrix.Samples)
	assert.Equal(t, [][]float64{{10, 0, 3}, {7, 2, 9}}, matrix.Counts)
	assert.Equal(t, 2, matrix.SampleCount())
	assert.Equal(t, 3, matrix.FeatureCount())
}

func TestReadCSVWithoutNameColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counts.csv")
	content := "geneA,geneB\n5,1\n2,8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	matrix, err := NewCountsReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"geneA", "geneB"}, matrix.Features)
	assert.Equal(t, []string{"sample_1", "sample_2"}, matrix.Samples)
}

func TestReadExcelCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"sample", "geneA", "geneB"},
		{"s1", 4, 11},
		{"s2", 6, 0},
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	matrix, err := NewCountsReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"geneA", "geneB"}, matrix.Features)
	assert.Equal(t, [][]float64{{4, 11}, {6, 0}}, matrix.Counts)
}

func TestReadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.csv")
	_, err := NewCountsReader(missing).Read()
	assert.Error(t, err)

	ragged := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(ragged, []byte("geneA,geneB\n1,2,3\n"), 0o644))
	_, err = NewCountsReader(ragged).Read()
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.csv")
	require.NoError(t, os.WriteFile(negative, []byte("geneA\n-4\n"), 0o644))
	_, err = NewCountsReader(negative).Read()
	assert.Error(t, err)
}
