// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package detection

import "github.com/tomtom215/signintriage/internal/signin"

// ImpossibleTravelKm is the distance above which consecutive sign-ins are
// treated as impossible travel. The comparison is strict.
const ImpossibleTravelKm = 800.0

// Indicator weights. They sum to 100.
const (
	WeightImpossibleTravel = 40
	WeightNewDevice        = 20
	WeightNewIP            = 15
	WeightMFANotCompleted  = 25
)

// Indicator is one additive risk signal.
type Indicator struct {
	Rule   RuleType
	Phrase string
	Weight int
	fires  func(*signin.FeaturizedEvent) bool
}

// Fires reports whether the indicator is present on f.
func (i Indicator) Fires(f *signin.FeaturizedEvent) bool {
	return i.fires(f)
}

// indicators is ordered; note phrases follow this order.
var indicators = []Indicator{
	{
		Rule:   RuleTypeImpossibleTravel,
		Phrase: "impossible travel",
		Weight: WeightImpossibleTravel,
		fires:  func(f *signin.FeaturizedEvent) bool { return f.DistKm > ImpossibleTravelKm },
	},
	{
		Rule:   RuleTypeNewDevice,
		Phrase: "new device",
		Weight: WeightNewDevice,
		fires:  func(f *signin.FeaturizedEvent) bool { return f.NewDevice },
	},
	{
		Rule:   RuleTypeNewIP,
		Phrase: "new IP",
		Weight: WeightNewIP,
		fires:  func(f *signin.FeaturizedEvent) bool { return f.NewIP },
	},
	{
		Rule:   RuleTypeMFANotCompleted,
		Phrase: "MFA not completed",
		Weight: WeightMFANotCompleted,
		fires:  func(f *signin.FeaturizedEvent) bool { return !f.MFAResult },
	},
}

// Indicators returns the indicator table in evaluation order.
func Indicators() []Indicator {
	out := make([]Indicator, len(indicators))
	copy(out, indicators)
	return out
}

// Fired returns the indicators present on f, in evaluation order.
func Fired(f *signin.FeaturizedEvent) []Indicator {
	var out []Indicator
	for _, ind := range indicators {
		if ind.fires(f) {
			out = append(out, ind)
		}
	}
	return out
}

// PrimaryRule returns the first indicator that fires on f, or
// RuleTypeBaselineDeviation when none does.
func PrimaryRule(f *signin.FeaturizedEvent) RuleType {
	for _, ind := range indicators {
		if ind.fires(f) {
			return ind.Rule
		}
	}
	return RuleTypeBaselineDeviation
}
