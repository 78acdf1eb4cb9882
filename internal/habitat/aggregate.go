package habitat

// Delta is the after-minus-before change for both metrics.
type Delta struct {
	Biodiversity float64 `json:"biodiversity_change"`
	Carbon       float64 `json:"carbon_change"`
}

// SumBiodiversity totals biodiversity units over records. With
// postIntervention set, each record's difficulty, time to target and
// off-site risk factors are applied.
func SumBiodiversity(records []Record, postIntervention bool) float64 {
	total := 0.0
	for _, r := range records {
		if postIntervention {
			total += PostInterventionBiodiversityUnits(
				r.Size, float64(r.Distinctiveness), r.Condition, r.StrategicLocation, r.Connectivity,
				r.Difficulty, r.TimeToTarget, r.OffSiteRisk,
			)
			continue
		}
		total += BiodiversityUnits(r.Size, float64(r.Distinctiveness), r.Condition, r.StrategicLocation, r.Connectivity)
	}
	return total
}

// SumCarbon totals carbon tonnes over records for the given horizon.
func SumCarbon(records []Record, postIntervention bool, years float64) float64 {
	total := 0.0
	for _, r := range records {
		total += CarbonTonnes(r.Size, r.Storage, r.Flux, years, postIntervention)
	}
	return total
}

// NetChange returns the change from before to after over DefaultYears.
func NetChange(before, after []Record) Delta {
	return NetChangeOver(before, after, DefaultYears)
}

// NetChangeOver returns after minus before for biodiversity and carbon.
// Each record is evaluated with the formulas matching its own
// PostIntervention flag, so identical sets always net to zero. Empty sets
// contribute 0.
func NetChangeOver(before, after []Record, years float64) Delta {
	return Delta{
		Biodiversity: totalBiodiversity(after) - totalBiodiversity(before),
		Carbon:       totalCarbon(after, years) - totalCarbon(before, years),
	}
}

func totalBiodiversity(records []Record) float64 {
	total := 0.0
	for _, r := range records {
		total += r.BiodiversityUnits()
	}
	return total
}

func totalCarbon(records []Record, years float64) float64 {
	total := 0.0
	for _, r := range records {
		total += r.CarbonTonnes(years)
	}
	return total
}
