package greenops

import (
	"fmt"
	"math"
)

// Calculate restates a signed carbon quantity as equivalencies.
//
// Positive values are a benefit and are phrased as avoided activity,
// negative values as added activity. Magnitudes below
// MinEquivalencyThresholdKg produce an empty output with
// DirectionNeutral and no error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	magnitude := math.Abs(kg)
	if magnitude < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	direction := DirectionBenefit
	if kg < 0 {
		direction = DirectionCost
	}

	miles := magnitude / EPAMilesDrivenFactor
	seedlings := magnitude / EPATreeSeedlingFactor
	homeDays := magnitude / EPAHomeDayFactor
	if math.IsInf(miles, 0) || math.IsNaN(miles) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatValue(miles), Label: "miles driven"},
		{
			Type: EquivalencyTreeSeedlings, Value: seedlings, FormattedValue: formatValue(seedlings),
			Label: "tree seedlings grown for 10 years",
		},
		{Type: EquivalencyHomeDays, Value: homeDays, FormattedValue: formatValue(homeDays), Label: "days of home electricity"},
	}

	var display, compact string
	if direction == DirectionBenefit {
		display = fmt.Sprintf("Equivalent to avoiding ~%s miles driven or growing ~%s tree seedlings for 10 years",
			results[0].FormattedValue, results[1].FormattedValue)
		compact = fmt.Sprintf("(≈ -%s mi)", results[0].FormattedValue)
	} else {
		display = fmt.Sprintf("Equivalent to driving an extra ~%s miles or ~%s days of home electricity",
			results[0].FormattedValue, results[2].FormattedValue)
		compact = fmt.Sprintf("(≈ +%s mi)", results[0].FormattedValue)
	}

	return EquivalencyOutput{
		InputKg:     kg,
		Direction:   direction,
		Results:     results,
		DisplayText: display,
		CompactText: compact,
	}, nil
}

// ForCarbonDelta calculates equivalencies for a habitat carbon delta in
// tonnes CO2e. A non-finite delta yields an empty output.
func ForCarbonDelta(tonnes float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: tonnes, Unit: UnitTonnesCO2e})
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

func formatValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
