// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawTable is an unvalidated delimited table: a header row and data rows.
// Rows may be shorter or longer than the header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Cell returns row[i], or "" when the row is too short.
func (t *RawTable) Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadTable parses comma-delimited input with a header row.
// Malformed quoting is reported wrapped in ErrRead. Empty input yields a
// table with no header, which Normalize rejects with a SchemaError.
func ReadTable(r io.Reader) (*RawTable, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	table := &RawTable{}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrRead, err)
	}
	table.Header = header

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
