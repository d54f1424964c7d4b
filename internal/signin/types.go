// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Canonical column names, after trim and lower-casing.
const (
	ColTimestamp = "timestamp"
	ColUser      = "user"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColIP        = "ip"
	ColDevice    = "device"
	ColCountry   = "country"
	ColCity      = "city"
	ColMFAResult = "mfa_result"
	ColSuccess   = "success"
	ColIsAdmin   = "is_admin"
)

// RequiredColumns is the canonical column set every input must carry.
var RequiredColumns = []string{
	ColTimestamp,
	ColUser,
	ColLatitude,
	ColLongitude,
	ColIP,
	ColDevice,
	ColCountry,
	ColCity,
	ColMFAResult,
	ColSuccess,
	ColIsAdmin,
}

var requiredSet = func() map[string]bool {
	m := make(map[string]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		m[c] = true
	}
	return m
}()

// IsRequiredColumn reports whether name is one of the canonical columns.
func IsRequiredColumn(name string) bool {
	return requiredSet[name]
}

// ErrRead is returned when the delimited input itself cannot be parsed.
var ErrRead = errors.New("failed to read sign-in table")

// SchemaError reports canonical columns absent from the input header.
type SchemaError struct {
	// Missing is sorted ascending.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// DropReason explains why a row was excluded during normalization.
type DropReason string

const (
	DropInvalidTimestamp   DropReason = "invalid_timestamp"
	DropInvalidCoordinates DropReason = "invalid_coordinates"
)

// DroppedRow identifies one excluded data row (1-based, header excluded).
type DroppedRow struct {
	Row    int
	Reason DropReason
}

// DropStats counts excluded rows per reason.
type DropStats struct {
	InvalidTimestamp   int `json:"invalid_timestamp"`
	InvalidCoordinates int `json:"invalid_coordinates"`
}

// Total returns the number of dropped rows across all reasons.
func (d DropStats) Total() int {
	return d.InvalidTimestamp + d.InvalidCoordinates
}

func (d *DropStats) add(reason DropReason) {
	switch reason {
	case DropInvalidTimestamp:
		d.InvalidTimestamp++
	case DropInvalidCoordinates:
		d.InvalidCoordinates++
	}
}

// SignInEvent is one normalized authentication attempt.
type SignInEvent struct {
	Timestamp time.Time // UTC
	User      string
	Latitude  float64
	Longitude float64
	IP        string
	Device    string
	Country   string
	City      string
	MFAResult bool
	Success   bool
	IsAdmin   bool

	// Extra holds pass-through cells aligned with Schema.Extra.
	Extra []string

	// Row is the 1-based source data row.
	Row int
}

// Previous carries the fields of a user's immediately preceding event.
type Previous struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
	IP        string
	Device    string
	Country   string
}

// FeaturizedEvent is a SignInEvent plus its sequential features.
type FeaturizedEvent struct {
	SignInEvent

	Hour      int
	IsWeekend bool

	// Prev is nil for the first event seen for a user.
	Prev *Previous

	DistKm        float64
	MinsSinceLast float64

	NewIP      bool
	NewDevice  bool
	NewCountry bool
}

// IsFirstForUser reports whether the event has no predecessor.
func (f *FeaturizedEvent) IsFirstForUser() bool {
	return f.Prev == nil
}

// Schema describes the normalized column layout of a batch.
type Schema struct {
	// Columns lists every retained column in input order.
	Columns []string

	// Extra lists the non-canonical columns in input order.
	Extra []string

	extraIndex map[string]int
}

// NewSchema builds a Schema from normalized column names in input order.
func NewSchema(columns []string) *Schema {
	s := &Schema{
		Columns:    columns,
		extraIndex: make(map[string]int),
	}
	for _, c := range columns {
		if requiredSet[c] {
			continue
		}
		s.extraIndex[c] = len(s.Extra)
		s.Extra = append(s.Extra, c)
	}
	return s
}

// Cell renders the value of column col for ev in export form.
func (s *Schema) Cell(ev *SignInEvent, col string) string {
	switch col {
	case ColTimestamp:
		return FormatTimestamp(ev.Timestamp)
	case ColUser:
		return ev.User
	case ColLatitude:
		return FormatFloat(ev.Latitude)
	case ColLongitude:
		return FormatFloat(ev.Longitude)
	case ColIP:
		return ev.IP
	case ColDevice:
		return ev.Device
	case ColCountry:
		return ev.Country
	case ColCity:
		return ev.City
	case ColMFAResult:
		return FormatFlag(ev.MFAResult)
	case ColSuccess:
		return FormatFlag(ev.Success)
	case ColIsAdmin:
		return FormatFlag(ev.IsAdmin)
	}
	if i, ok := s.extraIndex[col]; ok && i < len(ev.Extra) {
		return ev.Extra[i]
	}
	return ""
}

// Batch is the output of Normalize.
type Batch struct {
	Schema  *Schema
	Events  []SignInEvent
	Dropped []DroppedRow
	Drops   DropStats

	// RowsRead counts data rows seen, including dropped ones.
	RowsRead int
}
