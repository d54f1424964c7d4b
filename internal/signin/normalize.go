// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/signintriage/internal/logging"
)

// NormalizeColumnName trims surrounding whitespace and lower-cases name.
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize validates the header of raw, coerces every row into a
// SignInEvent, drops rows with an unusable timestamp or coordinates, and
// returns the survivors ordered by (user, timestamp). Ties keep input order.
//
// A *SchemaError is returned when canonical columns are missing; no rows are
// produced in that case.
func Normalize(ctx context.Context, raw *RawTable) (*Batch, error) {
	logger := logging.Ctx(ctx)

	index := make(map[string]int, len(raw.Header))
	columns := make([]string, 0, len(raw.Header))
	for i, h := range raw.Header {
		name := NormalizeColumnName(h)
		if _, dup := index[name]; dup {
			logger.Warn().
				Str("column", name).
				Int("position", i+1).
				Msg("Duplicate column ignored, first occurrence kept")
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	schema := NewSchema(columns)
	extraPos := make([]int, len(schema.Extra))
	for i, c := range schema.Extra {
		extraPos[i] = index[c]
	}

	batch := &Batch{
		Schema:   schema,
		Events:   make([]SignInEvent, 0, len(raw.Rows)),
		RowsRead: len(raw.Rows),
	}

	cell := func(row []string, col string) string {
		return raw.Cell(row, index[col])
	}

	for n, row := range raw.Rows {
		rowNum := n + 1

		ts, ok := ParseTimestamp(cell(row, ColTimestamp))
		if !ok {
			batch.drop(rowNum, DropInvalidTimestamp)
			logger.Debug().Int("row", rowNum).Str("reason", string(DropInvalidTimestamp)).Msg("Row dropped")
			continue
		}

		lat, latOK := parseCoordinate(cell(row, ColLatitude), 90)
		lon, lonOK := parseCoordinate(cell(row, ColLongitude), 180)
		if !latOK || !lonOK {
			batch.drop(rowNum, DropInvalidCoordinates)
			logger.Debug().Int("row", rowNum).Str("reason", string(DropInvalidCoordinates)).Msg("Row dropped")
			continue
		}

		ev := SignInEvent{
			Timestamp: ts,
			User:      cell(row, ColUser),
			Latitude:  lat,
			Longitude: lon,
			IP:        cell(row, ColIP),
			Device:    cell(row, ColDevice),
			Country:   cell(row, ColCountry),
			City:      cell(row, ColCity),
			MFAResult: parseIndicator(cell(row, ColMFAResult)),
			Success:   parseIndicator(cell(row, ColSuccess)),
			IsAdmin:   parseIndicator(cell(row, ColIsAdmin)),
			Row:       rowNum,
		}
		if len(extraPos) > 0 {
			ev.Extra = make([]string, len(extraPos))
			for i, pos := range extraPos {
				ev.Extra[i] = raw.Cell(row, pos)
			}
		}
		batch.Events = append(batch.Events, ev)
	}

	SortEvents(batch.Events)
	return batch, nil
}

func (b *Batch) drop(row int, reason DropReason) {
	b.Dropped = append(b.Dropped, DroppedRow{Row: row, Reason: reason})
	b.Drops.add(reason)
}

// SortEvents orders events by (user, timestamp), keeping input order for ties.
func SortEvents(events []SignInEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].User != events[j].User {
			return events[i].User < events[j].User
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

// parseNumber returns the cell as a finite-or-infinite float; empty,
// unparseable and NaN cells are missing.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseCoordinate(raw string, limit float64) (float64, bool) {
	f, ok := parseNumber(raw)
	if !ok || f < -limit || f > limit {
		return 0, false
	}
	return f, true
}

// parseIndicator maps missing to false and any non-zero finite number to true.
func parseIndicator(raw string) bool {
	f, ok := parseNumber(raw)
	return ok && !math.IsInf(f, 0) && f != 0
}
