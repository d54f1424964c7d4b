// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64
		tolerance  float64
	}{
		{
			name: "same point",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 40.7128, lon2: -74.0060,
			want: 0, tolerance: 0,
		},
		{
			// Flinders Peak to Buninyong, reference geodesic 54972.271 m
			name: "flinders peak to buninyong",
			lat1: -37.95103341666667, lon1: 144.42486788888888,
			lat2: -37.65282113888889, lon2: 143.92649552777777,
			want: 54.972271, tolerance: 0.001,
		},
		{
			name: "paris to tokyo",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 35.6762, lon2: 139.6503,
			want: 9735.3, tolerance: 1,
		},
		{
			name: "new york to london",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 51.5074, lon2: -0.1278,
			want: 5585.2, tolerance: 1,
		},
		{
			name: "one degree of longitude on the equator",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			want: 111.319, tolerance: 0.01,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lon1: 179.5,
			lat2: 0, lon2: -179.5,
			want: 111.319, tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceKm() = %.4f, want %.4f ± %.4f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := DistanceKm(48.8566, 2.3522, 35.6762, 139.6503)
	b := DistanceKm(35.6762, 139.6503, 48.8566, 2.3522)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestDistanceKm_NearlyAntipodal(t *testing.T) {
	t.Parallel()

	got := DistanceKm(0, 0, 0.5, 179.7)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("DistanceKm() = %v, want finite", got)
	}
	if got < 19000 || got > 20100 {
		t.Errorf("DistanceKm() = %.1f, want roughly half the circumference", got)
	}
}
