// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/signintriage/internal/detection"
)

// CEFExporter writes one Common Event Format line per alert.
// CEF:Version|Device Vendor|Device Product|Device Version|Signature ID|Name|Severity|Extension
type CEFExporter struct {
	DeviceVendor  string
	DeviceProduct string
	DeviceVersion string
}

// NewCEFExporter creates a CEF exporter with default device fields.
func NewCEFExporter() *CEFExporter {
	return &CEFExporter{
		DeviceVendor:  "SigninTriage",
		DeviceProduct: "SigninAnomalyTriage",
		DeviceVersion: "1.0",
	}
}

func (e *CEFExporter) Format() Format      { return FormatCEF }
func (e *CEFExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (e *CEFExporter) FileName() string    { return "alerts.cef" }

// Export writes doc to w.
func (e *CEFExporter) Export(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for i := range doc.Alerts {
		if _, err := bw.WriteString(e.line(&doc.Alerts[i]) + "\n"); err != nil {
			return fmt.Errorf("failed to write cef line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush cef output: %w", err)
	}
	return nil
}

func (e *CEFExporter) line(a *detection.ScoredEvent) string {
	rule := detection.PrimaryRule(&a.FeaturizedEvent)
	return fmt.Sprintf("CEF:0|%s|%s|%s|%s|%s|%d|%s",
		escapeHeader(e.DeviceVendor),
		escapeHeader(e.DeviceProduct),
		escapeHeader(e.DeviceVersion),
		escapeHeader(string(rule)),
		escapeHeader("Suspicious sign-in"),
		cefSeverity(a.RiskScore),
		buildExtension(a),
	)
}

// cefSeverity maps a 0-100 risk score onto the CEF 0-10 scale.
func cefSeverity(score int) int {
	s := score / 10
	switch {
	case s < 0:
		return 0
	case s > 10:
		return 10
	}
	return s
}

func buildExtension(a *detection.ScoredEvent) string {
	parts := []string{
		fmt.Sprintf("rt=%d", a.Timestamp.UnixMilli()),
		"suser=" + escapeExtension(a.User),
		"src=" + escapeExtension(a.IP),
		"cs1Label=device",
		"cs1=" + escapeExtension(a.Device),
		"cs2Label=country",
		"cs2=" + escapeExtension(a.Country),
		"cs3Label=city",
		"cs3=" + escapeExtension(a.City),
		"cn1Label=riskScore",
		fmt.Sprintf("cn1=%d", a.RiskScore),
		"cfp1Label=distKm",
		"cfp1=" + fmt.Sprintf("%.3f", a.DistKm),
		"msg=" + escapeExtension(a.TriageNote),
	}
	return strings.Join(parts, " ")
}

// escapeHeader escapes backslash and pipe in header fields.
func escapeHeader(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	return flattenNewlines(s)
}

// escapeExtension escapes backslash and equals in extension values.
func escapeExtension(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "=", "\\=")
	return flattenNewlines(s)
}

func flattenNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
