package greenops

// Conversion factors in kg CO2e per unit of activity, from the EPA
// Greenhouse Gas Equivalencies Calculator (2024 edition):
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPATreeSeedlingFactor is kg CO2e absorbed by one seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average home electricity.
	EPAHomeDayFactor = 18.3
)

// Unit conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest magnitude that gets equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "X.X million" display.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "X.X billion" display.
	BillionThreshold = 1_000_000_000
)

// UnitTonnesCO2e is the unit habitat carbon deltas are reported in.
const UnitTonnesCO2e = "tCO2e"
