// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVExporter writes a comma-delimited table with a header row. An empty
// alert list produces the header alone.
type CSVExporter struct {
	Layout Layout
}

func (e *CSVExporter) Format() Format      { return FormatCSV }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }
func (e *CSVExporter) FileName() string    { return "alerts.csv" }

// Export writes doc to w.
func (e *CSVExporter) Export(w io.Writer, doc *Document) error {
	cols := doc.Columns(e.Layout)
	cw := csv.NewWriter(w)

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(cols))
	for i := range doc.Alerts {
		a := &doc.Alerts[i]
		for j, col := range cols {
			record[j] = doc.Cell(a, col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
