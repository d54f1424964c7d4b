// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/signin"
)

var testColumns = []string{
	"timestamp", "user", "latitude", "longitude", "ip", "device", "country", "city",
	"mfa_result", "success", "is_admin", "department",
}

func testDocument() *Document {
	t1 := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(90 * time.Minute)

	first := signin.FeaturizedEvent{
		SignInEvent: signin.SignInEvent{
			Timestamp: t1, User: "alice", Latitude: 51.5, Longitude: -0.12,
			IP: "10.0.0.1", Device: "laptop", Country: "GB", City: "London",
			MFAResult: true, Success: true, Extra: []string{"finance"},
		},
		Hour: 9, IsWeekend: true,
		NewIP: true, NewDevice: true, NewCountry: true,
	}
	second := signin.FeaturizedEvent{
		SignInEvent: signin.SignInEvent{
			Timestamp: t2, User: "alice", Latitude: 35.68, Longitude: 139.69,
			IP: "10.9.9.9", Device: "phone", Country: "JP", City: "Tokyo",
			Success: true, Extra: []string{"finance"},
		},
		Hour: 10, IsWeekend: true,
		Prev: &signin.Previous{
			Latitude: 51.5, Longitude: -0.12, Timestamp: t1,
			IP: "10.0.0.1", Device: "laptop", Country: "GB",
		},
		DistKm: 9560.5, MinsSinceLast: 90,
		NewIP: true, NewDevice: true, NewCountry: true,
	}

	scored := detection.ScoreAll([]signin.FeaturizedEvent{second, first})
	return &Document{
		Schema: signin.NewSchema(testColumns),
		Alerts: detection.FilterAlerts(scored, 0),
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{" JSON ", FormatJSON, false},
		{"Cef", FormatCEF, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatCSV, FormatJSON, FormatCEF} {
		e, err := New(f, LayoutFull)
		if err != nil {
			t.Fatalf("New(%q) error = %v", f, err)
		}
		if e.Format() != f {
			t.Errorf("New(%q).Format() = %q", f, e.Format())
		}
		if !strings.HasSuffix(e.FileName(), "."+string(f)) {
			t.Errorf("FileName() = %q, want .%s suffix", e.FileName(), f)
		}
	}
	if _, err := New("xml", LayoutFull); err == nil {
		t.Error("New(xml) expected error")
	}
}

func TestCSVExporter_FullLayout(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	var buf bytes.Buffer
	if err := (&CSVExporter{Layout: LayoutFull}).Export(&buf, doc); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}

	header := records[0]
	wantHeader := append(append([]string{}, testColumns...), DerivedColumns...)
	if strings.Join(header, ",") != strings.Join(wantHeader, ",") {
		t.Errorf("header = %v\nwant     %v", header, wantHeader)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	// Highest score first: the Tokyo login.
	top := records[1]
	if top[idx["city"]] != "Tokyo" {
		t.Errorf("first row city = %q, want Tokyo", top[idx["city"]])
	}
	if top[idx["risk_score"]] != "100" {
		t.Errorf("risk_score = %q, want 100", top[idx["risk_score"]])
	}
	if top[idx["timestamp"]] != "2024-01-06 10:30:00+00:00" {
		t.Errorf("timestamp = %q", top[idx["timestamp"]])
	}
	if top[idx["prev_timestamp"]] != "2024-01-06 09:00:00+00:00" {
		t.Errorf("prev_timestamp = %q", top[idx["prev_timestamp"]])
	}
	if top[idx["department"]] != "finance" {
		t.Errorf("department = %q, want finance", top[idx["department"]])
	}
	if top[idx["mfa_result"]] != "0" || top[idx["new_ip"]] != "1" {
		t.Errorf("flags rendered as %q/%q, want 0/1", top[idx["mfa_result"]], top[idx["new_ip"]])
	}

	first := records[2]
	for _, col := range []string{"prev_latitude", "prev_longitude", "prev_timestamp", "prev_ip", "prev_device", "prev_country"} {
		if first[idx[col]] != "" {
			t.Errorf("first event %s = %q, want empty", col, first[idx[col]])
		}
	}
	if first[idx["dist_km"]] != "0" {
		t.Errorf("first event dist_km = %q, want 0", first[idx["dist_km"]])
	}
}

func TestCSVExporter_ViewLayout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (&CSVExporter{Layout: LayoutView}).Export(&buf, testDocument()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	want := "timestamp,user,city,country,device,risk_score,triage_note"
	if got := strings.Join(records[0], ","); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if !strings.Contains(records[1][6], "Tokyo, JP") {
		t.Errorf("triage note = %q", records[1][6])
	}
}

func TestCSVExporter_NoAlerts(t *testing.T) {
	t.Parallel()

	doc := &Document{Schema: signin.NewSchema(testColumns), Alerts: []detection.ScoredEvent{}}
	var buf bytes.Buffer
	if err := (&CSVExporter{Layout: LayoutFull}).Export(&buf, doc); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want header only: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "timestamp,user,") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestJSONExporter(t *testing.T) {
	t.Parallel()

	t.Run("full", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := (&JSONExporter{Layout: LayoutFull}).Export(&buf, testDocument()); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		var got []AlertRecord
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		if got[0].Severity != detection.SeverityCritical {
			t.Errorf("severity = %q, want critical", got[0].Severity)
		}
		if got[0].PrevIP == nil || *got[0].PrevIP != "10.0.0.1" {
			t.Errorf("prev_ip = %v", got[0].PrevIP)
		}
		if got[1].PrevIP != nil {
			t.Errorf("first event prev_ip = %v, want null", *got[1].PrevIP)
		}
		if got[0].Extra["department"] != "finance" {
			t.Errorf("extra = %v", got[0].Extra)
		}
	})

	t.Run("view", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := (&JSONExporter{Layout: LayoutView}).Export(&buf, testDocument()); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		var got []ViewRecord
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(got) != 2 || got[0].City != "Tokyo" {
			t.Errorf("view records = %+v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		doc := &Document{Schema: signin.NewSchema(testColumns)}
		if err := (&JSONExporter{}).Export(&buf, doc); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("empty export = %q, want []", got)
		}
	})
}

func TestCEFExporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewCEFExporter().Export(&buf, testDocument()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "CEF:0|SigninTriage|SigninAnomalyTriage|1.0|impossible_travel|Suspicious sign-in|10|") {
		t.Errorf("line 0 header = %q", lines[0])
	}
	if !strings.Contains(lines[0], "suser=alice") || !strings.Contains(lines[0], "src=10.9.9.9") {
		t.Errorf("line 0 extension = %q", lines[0])
	}
	// First event: new device, new IP and no MFA, no travel.
	if !strings.Contains(lines[1], "|new_device|") {
		t.Errorf("line 1 signature = %q", lines[1])
	}
}

func TestCEFEscaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"header pipe", escapeHeader, "a|b", `a\|b`},
		{"header backslash", escapeHeader, `a\b`, `a\\b`},
		{"header equals untouched", escapeHeader, "a=b", "a=b"},
		{"extension equals", escapeExtension, "a=b", `a\=b`},
		{"extension backslash", escapeExtension, `dom\user`, `dom\\user`},
		{"newlines flattened", escapeExtension, "a\r\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCEFSeverity(t *testing.T) {
	t.Parallel()

	for score, want := range map[int]int{0: 0, 39: 3, 40: 4, 75: 7, 100: 10, 150: 10, -5: 0} {
		if got := cefSeverity(score); got != want {
			t.Errorf("cefSeverity(%d) = %d, want %d", score, got, want)
		}
	}
}

func TestFullLayout_ReingestedDerivedColumns(t *testing.T) {
	t.Parallel()

	// Columns of a full export fed back in: derived names arrive as extras.
	cols := append(append([]string(nil), testColumns...), ColRiskScore, ColHour)
	doc := testDocument()
	doc.Schema = signin.NewSchema(cols)
	for i := range doc.Alerts {
		doc.Alerts[i].Extra = []string{"finance", "999", "23"}
	}

	header := doc.Columns(LayoutFull)
	seen := make(map[string]int)
	for _, c := range header {
		seen[c]++
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("column %q appears %d times in %v", c, n, header)
		}
	}
	if want := len(testColumns) + len(DerivedColumns); len(header) != want {
		t.Errorf("header has %d columns, want %d", len(header), want)
	}

	var buf bytes.Buffer
	if err := (&CSVExporter{Layout: LayoutFull}).Export(&buf, doc); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	idx := -1
	for i, c := range rows[0] {
		if c == ColRiskScore {
			idx = i
		}
	}
	if idx < 0 || rows[1][idx] == "999" {
		t.Errorf("risk_score should be recomputed, row = %v", rows[1])
	}

	buf.Reset()
	if err := (&JSONExporter{Layout: LayoutFull}).Export(&buf, doc); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var recs []AlertRecord
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := recs[0].Extra[ColRiskScore]; ok {
		t.Errorf("extra carries stale risk_score: %v", recs[0].Extra)
	}
	if recs[0].Extra["department"] != "finance" {
		t.Errorf("extra = %v", recs[0].Extra)
	}
}
