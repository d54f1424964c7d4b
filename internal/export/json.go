// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/signin"
)

// ViewRecord is one row of the analyst view.
type ViewRecord struct {
	Timestamp  string             `json:"timestamp"`
	User       string             `json:"user"`
	City       string             `json:"city"`
	Country    string             `json:"country"`
	Device     string             `json:"device"`
	RiskScore  int                `json:"risk_score"`
	Severity   detection.Severity `json:"severity"`
	TriageNote string             `json:"triage_note"`
}

// AlertRecord is one alert with every input and derived field.
type AlertRecord struct {
	Timestamp string  `json:"timestamp"`
	User      string  `json:"user"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IP        string  `json:"ip"`
	Device    string  `json:"device"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	MFAResult int     `json:"mfa_result"`
	Success   int     `json:"success"`
	IsAdmin   int     `json:"is_admin"`

	Extra map[string]string `json:"extra,omitempty"`

	Hour          int      `json:"hour"`
	IsWeekend     int      `json:"is_weekend"`
	PrevLatitude  *float64 `json:"prev_latitude"`
	PrevLongitude *float64 `json:"prev_longitude"`
	PrevTimestamp *string  `json:"prev_timestamp"`
	PrevIP        *string  `json:"prev_ip"`
	PrevDevice    *string  `json:"prev_device"`
	PrevCountry   *string  `json:"prev_country"`
	DistKm        float64  `json:"dist_km"`
	MinsSinceLast float64  `json:"mins_since_last"`
	NewIP         int      `json:"new_ip"`
	NewDevice     int      `json:"new_device"`
	NewCountry    int      `json:"new_country"`

	RiskScore  int                `json:"risk_score"`
	Severity   detection.Severity `json:"severity"`
	TriageNote string             `json:"triage_note"`
}

// ViewRecords renders the analyst view of alerts.
func ViewRecords(alerts []detection.ScoredEvent) []ViewRecord {
	out := make([]ViewRecord, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		out = append(out, ViewRecord{
			Timestamp:  signin.FormatTimestamp(a.Timestamp),
			User:       a.User,
			City:       a.City,
			Country:    a.Country,
			Device:     a.Device,
			RiskScore:  a.RiskScore,
			Severity:   a.Severity(),
			TriageNote: a.TriageNote,
		})
	}
	return out
}

// AlertRecords renders the full form of alerts.
func AlertRecords(schema *signin.Schema, alerts []detection.ScoredEvent) []AlertRecord {
	out := make([]AlertRecord, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		rec := AlertRecord{
			Timestamp:     signin.FormatTimestamp(a.Timestamp),
			User:          a.User,
			Latitude:      a.Latitude,
			Longitude:     a.Longitude,
			IP:            a.IP,
			Device:        a.Device,
			Country:       a.Country,
			City:          a.City,
			MFAResult:     flag(a.MFAResult),
			Success:       flag(a.Success),
			IsAdmin:       flag(a.IsAdmin),
			Hour:          a.Hour,
			IsWeekend:     flag(a.IsWeekend),
			DistKm:        a.DistKm,
			MinsSinceLast: a.MinsSinceLast,
			NewIP:         flag(a.NewIP),
			NewDevice:     flag(a.NewDevice),
			NewCountry:    flag(a.NewCountry),
			RiskScore:     a.RiskScore,
			Severity:      a.Severity(),
			TriageNote:    a.TriageNote,
		}
		if p := a.Prev; p != nil {
			lat, lon := p.Latitude, p.Longitude
			ts := signin.FormatTimestamp(p.Timestamp)
			ip, device, country := p.IP, p.Device, p.Country
			rec.PrevLatitude = &lat
			rec.PrevLongitude = &lon
			rec.PrevTimestamp = &ts
			rec.PrevIP = &ip
			rec.PrevDevice = &device
			rec.PrevCountry = &country
		}
		if schema != nil && len(schema.Extra) > 0 {
			rec.Extra = make(map[string]string, len(schema.Extra))
			for _, col := range schema.Extra {
				if derived[col] {
					continue
				}
				rec.Extra[col] = schema.Cell(&a.SignInEvent, col)
			}
		}
		out = append(out, rec)
	}
	return out
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// JSONExporter writes alerts as an indented JSON array.
type JSONExporter struct {
	Layout Layout
}

func (e *JSONExporter) Format() Format      { return FormatJSON }
func (e *JSONExporter) ContentType() string { return "application/json" }
func (e *JSONExporter) FileName() string    { return "alerts.json" }

// Export writes doc to w.
func (e *JSONExporter) Export(w io.Writer, doc *Document) error {
	var v interface{}
	if e.Layout == LayoutView {
		v = ViewRecords(doc.Alerts)
	} else {
		v = AlertRecords(doc.Schema, doc.Alerts)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write alerts: %w", err)
	}
	return nil
}
