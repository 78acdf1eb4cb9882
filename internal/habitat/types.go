// Package habitat implements the biodiversity-unit and carbon calculations
// used to compare a parcel of land before and after a habitat conversion.
//
// It holds the decision core of the offset calculator:
//   - unit calculators for biodiversity units and carbon tonnage
//   - the record builder that resolves reference data into a Record
//   - the transition validator that decides whether a conversion is legal
//   - aggregation of parcels into net change
//   - enumeration of every allowed conversion option for a parcel
//
// Reference data is supplied through the ReferenceData interface and is
// treated as read-only for the lifetime of the process.
package habitat

import "fmt"

// Category is a broad habitat category such as Farmland or Peatland.
type Category string

// Broad habitat categories known to the calculator.
const (
	CategoryFarmland              Category = "Farmland"
	CategoryWoodland              Category = "Woodland"
	CategorySemiNaturalGrasslands Category = "Semi-natural grasslands"
	CategoryHeathlands            Category = "Heathlands"
	CategoryPeatland              Category = "Peatland"
	CategoryHedgerow              Category = "Hedgerow"
	CategoryOrchards              Category = "Orchards"
	CategoryCoastalHabitats       Category = "Coastal Habitats"
	CategoryMarineHabitats        Category = "Marine Habitats"
)

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Record describes one parcel of land in a given state, before or after an
// intervention. Records are values: builders return copies and nothing in
// this package mutates a record after construction.
type Record struct {
	// Category is the broad habitat category.
	Category Category `json:"habitat"`

	// DistinctSubtype is the subtype name in the distinctiveness table.
	DistinctSubtype string `json:"distinct_subtype"`

	// CarbonSubtype is the subtype name in the carbon table.
	CarbonSubtype string `json:"carbon_subtype"`

	// Size is the parcel area in hectares.
	Size float64 `json:"size"`

	// Storage is carbon already stored, in tonnes C per hectare.
	Storage float64 `json:"storage"`

	// Flux is carbon flux in tonnes CO2e per hectare per year.
	Flux float64 `json:"flux"`

	// Distinctiveness is the 0-8 distinctiveness score.
	Distinctiveness int `json:"distinctiveness"`

	// Condition is the numeric condition score.
	Condition float64 `json:"condition"`

	// ConditionLabel is the label the condition was resolved from.
	// Empty for records built from a numeric condition.
	ConditionLabel Condition `json:"condition_label,omitempty"`

	// StrategicLocation is the strategic significance multiplier.
	StrategicLocation float64 `json:"strategic_location"`

	// Connectivity is 1.1 for distinctiveness >= 6, otherwise 1.
	Connectivity float64 `json:"connectivity"`

	// PostIntervention marks records describing newly created habitat.
	PostIntervention bool `json:"post_intervention"`

	// Difficulty is the creation difficulty multiplier (post-intervention only).
	Difficulty float64 `json:"difficulty,omitempty"`

	// TimeToTarget is the time-to-target-condition factor (post-intervention only).
	TimeToTarget float64 `json:"time_to_target_condition,omitempty"`

	// OffSiteRisk is the delivery risk multiplier (post-intervention only).
	OffSiteRisk float64 `json:"off_site_risk,omitempty"`
}

// Name returns the display name "<Habitat>, <Carbon subtype>, <Distinct subtype>".
func (r Record) Name() string {
	return fmt.Sprintf("%s, %s, %s", r.Category, r.CarbonSubtype, r.DistinctSubtype)
}

// BiodiversityUnits returns the record's biodiversity units, using the
// post-intervention formula when the record describes created habitat.
func (r Record) BiodiversityUnits() float64 {
	if r.PostIntervention {
		return PostInterventionBiodiversityUnits(
			r.Size, float64(r.Distinctiveness), r.Condition, r.StrategicLocation, r.Connectivity,
			r.Difficulty, r.TimeToTarget, r.OffSiteRisk,
		)
	}
	return BiodiversityUnits(r.Size, float64(r.Distinctiveness), r.Condition, r.StrategicLocation, r.Connectivity)
}

// CarbonTonnes returns the record's carbon tonnage over the given number of years.
func (r Record) CarbonTonnes(years float64) float64 {
	return CarbonTonnes(r.Size, r.Storage, r.Flux, years, r.PostIntervention)
}

// CarbonRow is one row of the carbon reference table.
type CarbonRow struct {
	Category       Category `json:"habitat" yaml:"habitat"`
	Subtype        string   `json:"subtype" yaml:"subtype"`
	StoredTonnesC  float64  `json:"stored_t_c_ha" yaml:"stored_t_c_ha"`
	FluxTonnesCO2e float64  `json:"flux_t_co2e_ha_yr" yaml:"flux_t_co2e_ha_yr"`
}

// DistinctivenessRow is one row of the distinctiveness reference table.
type DistinctivenessRow struct {
	Category   Category `json:"habitat" yaml:"habitat"`
	Subtype    string   `json:"subtype" yaml:"subtype"`
	Score      int      `json:"distinctiveness_score" yaml:"distinctiveness_score"`
	Difficulty float64  `json:"difficulty" yaml:"difficulty"`

	// TimeToTarget holds one value per condition label. A value of
	// NotPermittedSentinel marks a creation pathway that is not allowed.
	TimeToTarget map[Condition]float64 `json:"time_to_target" yaml:"time_to_target"`
}

// ReferenceData is the read-only lookup surface over the carbon and
// distinctiveness tables. Implementations must return rows in table order
// and must not change their contents after construction.
type ReferenceData interface {
	// Carbon returns the carbon row for (category, subtype) or a *LookupError.
	Carbon(category Category, subtype string) (CarbonRow, error)

	// Distinctiveness returns the distinctiveness row for (category, subtype) or a *LookupError.
	Distinctiveness(category Category, subtype string) (DistinctivenessRow, error)

	// DistinctivenessRows returns every distinctiveness row in table order.
	DistinctivenessRows() []DistinctivenessRow

	// CarbonRows returns the carbon rows for one category in table order.
	CarbonRows(category Category) []CarbonRow
}
