// Package tabular reads header-addressed rows from CSV and XLSX files.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when a file has a header but no data rows.
var ErrNoRows = errors.New("file has no data rows")

// Row is one data row. Line is its 1-based line (or sheet row) number.
type Row struct {
	Line   int
	values map[string]string
}

// Get returns the trimmed cell under column, or "" when absent.
// Column names match case-insensitively, ignoring spaces and underscores.
func (r Row) Get(column string) string {
	return r.values[normalizeHeader(column)]
}

// Has reports whether the row's header carried column.
func (r Row) Has(column string) bool {
	_, ok := r.values[normalizeHeader(column)]
	return ok
}

// ReadFile dispatches on the file extension: .xlsx is read with excelize,
// everything else as CSV.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(f, "")
	}
	return ReadCSV(f)
}

// ReadCSV reads a CSV document whose first record is the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	return buildRows(records)
}

// ReadXLSX reads a workbook sheet whose first row is the header. An empty
// sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return buildRows(records)
}

func buildRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = normalizeHeader(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		values := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			var cell string
			if col < len(record) {
				cell = strings.TrimSpace(record[col])
			}
			values[name] = cell
		}
		rows = append(rows, Row{Line: i + 2, values: values})
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// normalizeHeader folds "Image URL", "image_url" and "imageUrl" together.
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(name)
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
