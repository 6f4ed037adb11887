// Package importer turns spreadsheet exports of payment records into
// validated store inserts. The reader types cells at the boundary; the
// normalizer partitions rows and reports rejects without ever failing the
// batch on row-level invalidity.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRecord is one source row keyed by column name. Cells are typed: the
// numeric columns are parsed to float64 here, so a cell that stays a string
// is a numeric-looking value that did not parse. Empty cells are absent.
type RawRecord struct {
	Line   int
	Values map[string]any
}

var numericColumns = map[string]bool{
	"due_amount":       true,
	"discount_percent": true,
	"tax_percent":      true,
}

// ReadFile loads a tabular source by extension: .csv or .xlsx.
func ReadFile(path string) ([]RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported import file type: %s", path)
	}
}

// ReadCSV parses a header-led CSV stream into raw records.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if isEmptyRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rowToRecord(header, row, line))
	}
	return records, nil
}

func readXLSX(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s sheet %q is empty", path, sheets[0])
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []RawRecord
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, rowToRecord(header, row, i+2))
	}
	return records, nil
}

func rowToRecord(header, row []string, line int) RawRecord {
	values := make(map[string]any, len(header))
	for i, col := range header {
		if col == "" || i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		if numericColumns[col] {
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				values[col] = n
				continue
			}
		}
		values[col] = cell
	}
	return RawRecord{Line: line, Values: values}
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
