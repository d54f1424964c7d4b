// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

// Package export renders alert tables for download and SIEM ingestion.
//
// Two layouts exist: the compact view shown to analysts (timestamp, user,
// city, country, device, risk_score, triage_note) and the full layout, which
// repeats every input column in input order followed by the derived feature
// columns. Exporters never reorder or filter alerts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/signin"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatCEF  Format = "cef"
)

// Layout selects the column set.
type Layout string

const (
	LayoutFull Layout = "full"
	LayoutView Layout = "view"
)

// Derived column names appended after the input columns in the full layout.
const (
	ColHour          = "hour"
	ColIsWeekend     = "is_weekend"
	ColPrevLatitude  = "prev_latitude"
	ColPrevLongitude = "prev_longitude"
	ColPrevTimestamp = "prev_timestamp"
	ColPrevIP        = "prev_ip"
	ColPrevDevice    = "prev_device"
	ColPrevCountry   = "prev_country"
	ColDistKm        = "dist_km"
	ColMinsSinceLast = "mins_since_last"
	ColNewIP         = "new_ip"
	ColNewDevice     = "new_device"
	ColNewCountry    = "new_country"
	ColRiskScore     = "risk_score"
	ColTriageNote    = "triage_note"
)

// DerivedColumns lists the derived columns in export order.
var DerivedColumns = []string{
	ColHour,
	ColIsWeekend,
	ColPrevLatitude,
	ColPrevLongitude,
	ColPrevTimestamp,
	ColPrevIP,
	ColPrevDevice,
	ColPrevCountry,
	ColDistKm,
	ColMinsSinceLast,
	ColNewIP,
	ColNewDevice,
	ColNewCountry,
	ColRiskScore,
	ColTriageNote,
}

// derived holds the derived column names. Input columns with these names,
// such as those of a re-ingested full export, are recomputed rather than
// passed through.
var derived = func() map[string]bool {
	m := make(map[string]bool, len(DerivedColumns))
	for _, c := range DerivedColumns {
		m[c] = true
	}
	return m
}()

// ViewColumns is the analyst view layout.
var ViewColumns = []string{
	signin.ColTimestamp,
	signin.ColUser,
	signin.ColCity,
	signin.ColCountry,
	signin.ColDevice,
	ColRiskScore,
	ColTriageNote,
}

// Document is the alert table handed to an exporter.
type Document struct {
	Schema *signin.Schema
	Alerts []detection.ScoredEvent
}

// Columns returns the header for layout.
func (d *Document) Columns(layout Layout) []string {
	if layout == LayoutView {
		return append([]string(nil), ViewColumns...)
	}
	cols := make([]string, 0, len(d.Schema.Columns)+len(DerivedColumns))
	for _, c := range d.Schema.Columns {
		if !derived[c] {
			cols = append(cols, c)
		}
	}
	return append(cols, DerivedColumns...)
}

// Cell renders column col of alert a.
func (d *Document) Cell(a *detection.ScoredEvent, col string) string {
	switch col {
	case ColHour:
		return fmt.Sprintf("%d", a.Hour)
	case ColIsWeekend:
		return signin.FormatFlag(a.IsWeekend)
	case ColPrevLatitude:
		if a.Prev == nil {
			return ""
		}
		return signin.FormatFloat(a.Prev.Latitude)
	case ColPrevLongitude:
		if a.Prev == nil {
			return ""
		}
		return signin.FormatFloat(a.Prev.Longitude)
	case ColPrevTimestamp:
		if a.Prev == nil {
			return ""
		}
		return signin.FormatTimestamp(a.Prev.Timestamp)
	case ColPrevIP:
		if a.Prev == nil {
			return ""
		}
		return a.Prev.IP
	case ColPrevDevice:
		if a.Prev == nil {
			return ""
		}
		return a.Prev.Device
	case ColPrevCountry:
		if a.Prev == nil {
			return ""
		}
		return a.Prev.Country
	case ColDistKm:
		return signin.FormatFloat(a.DistKm)
	case ColMinsSinceLast:
		return signin.FormatFloat(a.MinsSinceLast)
	case ColNewIP:
		return signin.FormatFlag(a.NewIP)
	case ColNewDevice:
		return signin.FormatFlag(a.NewDevice)
	case ColNewCountry:
		return signin.FormatFlag(a.NewCountry)
	case ColRiskScore:
		return fmt.Sprintf("%d", a.RiskScore)
	case ColTriageNote:
		return a.TriageNote
	}
	return d.Schema.Cell(&a.SignInEvent, col)
}

// Exporter writes a Document to a destination.
type Exporter interface {
	Format() Format
	ContentType() string
	FileName() string
	Export(w io.Writer, doc *Document) error
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCEF:
		return FormatCEF, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want csv, json or cef)", s)
}

// New returns the exporter for format using layout. CEF ignores layout.
func New(format Format, layout Layout) (Exporter, error) {
	switch format {
	case FormatCSV:
		return &CSVExporter{Layout: layout}, nil
	case FormatJSON:
		return &JSONExporter{Layout: layout}, nil
	case FormatCEF:
		return NewCEFExporter(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}
