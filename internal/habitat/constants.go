package habitat

// Calculation defaults.
const (
	// DefaultYears is the horizon used for carbon sequestration totals.
	DefaultYears = 30.0

	// DefaultOffSiteRisk is applied to every newly created habitat.
	// It is a fixed policy value: no reference data supplies a different one.
	DefaultOffSiteRisk = 1.0

	// NotPermittedSentinel is the time-to-target value the reference tables
	// use for creation pathways the metric does not allow.
	NotPermittedSentinel = 999.0

	// MaxConditionImprovement is the largest condition gain allowed in one step.
	MaxConditionImprovement = 1.0
)

// Connectivity tiers.
const (
	// ConnectivityThreshold is the distinctiveness score at which the
	// higher connectivity multiplier applies.
	ConnectivityThreshold = 6

	// ConnectivityHigh is used for distinctiveness >= ConnectivityThreshold.
	ConnectivityHigh = 1.1

	// ConnectivityBase is used below the threshold.
	ConnectivityBase = 1.0
)

// Strategic location multipliers.
const (
	StrategicHigh   = 1.15
	StrategicMedium = 1.1
	StrategicLow    = 1.0
)

// ConnectivityFor returns the connectivity multiplier for a distinctiveness score.
func ConnectivityFor(distinctiveness int) float64 {
	if distinctiveness >= ConnectivityThreshold {
		return ConnectivityHigh
	}
	return ConnectivityBase
}

// StrategicLocations returns the allowed strategic location multipliers.
func StrategicLocations() []float64 {
	return []float64{StrategicHigh, StrategicMedium, StrategicLow}
}

// BeforeConditions returns the numeric conditions a pre-intervention
// parcel may be assigned.
func BeforeConditions() []float64 {
	return []float64{3, 2.5, 2, 1.5, 1}
}

func isStrategicLocation(v float64) bool {
	for _, s := range StrategicLocations() {
		if s == v {
			return true
		}
	}
	return false
}

func isConditionScore(v float64) bool {
	for _, label := range ConditionLabels() {
		if conditionScale[label] == v {
			return true
		}
	}
	return false
}
