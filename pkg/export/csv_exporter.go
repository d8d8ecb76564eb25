// Package export renders admin report datasets (rosters, catalog dumps,
// analytics rollups) into downloadable CSV, XLSX and PDF files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is the tabular payload every report renders: ordered column
// names plus one map per row keyed by column name.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// values flattens a row into header order. Columns a row does not carry
// render as empty cells rather than failing the export.
func (d Dataset) values(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}

// CSVExporter renders datasets as RFC 4180 CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes with the header row first.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("export needs at least one column")
	}
	records := make([][]string, 0, len(data.Rows)+1)
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		records = append(records, data.values(row))
	}

	buf := &bytes.Buffer{}
	if err := csv.NewWriter(buf).WriteAll(records); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
