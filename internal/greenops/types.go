// Package greenops turns carbon deltas into relatable equivalencies.
//
// A habitat conversion's carbon delta is expressed in tonnes CO2e, positive
// when the conversion is a net benefit. Calculate restates the magnitude as
// miles driven by an average passenger car, tree seedlings grown for ten
// years and days of household electricity, and says whether the conversion
// avoids or adds that much.
package greenops

import "fmt"

// EquivalencyType identifies one equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencyTreeSeedlings is tree seedlings grown for ten years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average home electricity use.
	EquivalencyHomeDays
)

// String returns the type name.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// Direction says which way a carbon delta points.
type Direction int

const (
	// DirectionNeutral is a delta too small to report.
	DirectionNeutral Direction = iota

	// DirectionBenefit is carbon kept out of the atmosphere.
	DirectionBenefit

	// DirectionCost is carbon released.
	DirectionCost
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNeutral:
		return "neutral"
	case DirectionBenefit:
		return "benefit"
	case DirectionCost:
		return "cost"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CarbonInput is a signed carbon quantity.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t, lb, optionally suffixed with CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one carbon quantity.
type EquivalencyOutput struct {
	// InputKg is the signed input in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	Direction Direction           `json:"direction"`
	Results   []EquivalencyResult `json:"results"`

	// DisplayText is prose for console output, e.g.
	// "Equivalent to avoiding ~57,292 miles driven or growing ~183 tree seedlings for 10 years".
	DisplayText string `json:"display_text"`

	// CompactText fits in a table cell, e.g. "(≈ -57,292 mi)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
