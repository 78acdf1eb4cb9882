package habitat

// BiodiversityUnits returns pre-intervention biodiversity units:
//
//	size * distinctiveness * condition * strategicLocation * connectivity
//
// Inputs are not bounds checked.
func BiodiversityUnits(size, distinctiveness, condition, strategicLocation, connectivity float64) float64 {
	return size * distinctiveness * condition * strategicLocation * connectivity
}

// PostInterventionBiodiversityUnits returns biodiversity units for created
// habitat: the pre-intervention product further multiplied by difficulty,
// time to target condition and off-site risk.
func PostInterventionBiodiversityUnits(
	size, distinctiveness, condition, strategicLocation, connectivity,
	difficulty, timeToTarget, offSiteRisk float64,
) float64 {
	return BiodiversityUnits(size, distinctiveness, condition, strategicLocation, connectivity) *
		difficulty * timeToTarget * offSiteRisk
}

// CarbonTonnes returns the carbon retained over years. Positive values are a
// net benefit.
//
// Pre-intervention: size * (storage - flux*years).
// Post-intervention: size * (0 - flux*years). Created habitat starts from a
// zero stock, so storage is ignored.
func CarbonTonnes(size, storage, flux, years float64, postIntervention bool) float64 {
	if postIntervention {
		return size * (0 - flux*years)
	}
	return size * (storage - flux*years)
}
