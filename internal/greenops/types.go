// Package greenops turns a yearly CO2 abatement figure into relatable
// equivalencies such as tree seedlings grown or car miles avoided.
//
// The retrofit engine reports abatement in kilograms of CO2 per year; this
// package adds the human framing shown next to the quote.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings EquivalencyType = iota

	// EquivalencyMilesAvoided is passenger-vehicle miles not driven.
	EquivalencyMilesAvoided

	// EquivalencyHomeDays is days of average home electricity use.
	EquivalencyHomeDays

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyMilesAvoided:
		return "MilesAvoided"
	case EquivalencyHomeDays:
		return "HomeDays"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name so JSON output stays readable.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formattedValue"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one abatement figure.
type EquivalencyOutput struct {
	// InputKg is the yearly abatement in kilograms CO2.
	InputKg float64 `json:"inputKg"`

	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line used in tables and the TUI.
	// Example: "Each year, like growing ~250 tree seedlings or not driving ~78,125 miles"
	DisplayText string `json:"displayText"`

	// CompactText is the short form, e.g. "(≈ 250 trees, 78,125 mi)".
	CompactText string `json:"compactText"`

	IsEmpty bool `json:"isEmpty"`
}
