// Package excel reads count matrices from xlsx and csv files. The expected
// layout is one header row of feature names followed by one row of counts
// per sample; a leading sample-name column is detected and skipped.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/suzannejin/propr/domain/core"
	"github.com/suzannejin/propr/internal"
)

// CountMatrix holds a parsed samples x features count matrix.
type CountMatrix struct {
	// ID is a fresh dataset identifier minted at read time; targets built
	// from the matrix carry it so tables can be traced back to their input.
	ID       core.DatasetID
	Features []string
	Samples  []string
	Counts   [][]float64
}

// SampleCount returns the number of samples (rows).
func (m *CountMatrix) SampleCount() int { return len(m.Counts) }

// FeatureCount returns the number of features (columns).
func (m *CountMatrix) FeatureCount() int { return len(m.Features) }

// CountsReader handles reading Excel and CSV count files
type CountsReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

// NewCountsReader creates a reader that handles both Excel and CSV files
func NewCountsReader(filePath string) *CountsReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &CountsReader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// Read parses the file into a count matrix.
func (r *CountsReader) Read() (*CountMatrix, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	return r.parse(rows)
}

func (r *CountsReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *CountsReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *CountsReader) parse(rows [][]string) (*CountMatrix, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("count file needs a header row and at least one sample row")
	}

	header := rows[0]
	// a non-numeric first cell in the body marks a sample-name column
	nameColumn := len(rows[1]) > 0 && !isNumeric(rows[1][0])

	features := header
	if nameColumn {
		features = header[1:]
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("count file has no feature columns")
	}

	matrix := &CountMatrix{ID: core.NewDatasetID(), Features: features}
	for i, row := range rows[1:] {
		cells := row
		sample := fmt.Sprintf("sample_%d", i+1)
		if nameColumn {
			if len(row) == 0 {
				continue
			}
			sample = row[0]
			cells = row[1:]
		}
		if len(cells) != len(features) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i+2, len(cells), len(features))
		}

		counts := make([]float64, len(cells))
		for j, cell := range cells {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+2, features[j], err)
			}
			if v < 0 {
				return nil, fmt.Errorf("row %d column %q: negative count %g", i+2, features[j], v)
			}
			counts[j] = v
		}
		matrix.Samples = append(matrix.Samples, sample)
		matrix.Counts = append(matrix.Counts, counts)
	}

	r.log.Debug("read count matrix from %s: %d samples, %d features",
		r.filePath, matrix.SampleCount(), matrix.FeatureCount())
	return matrix, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
