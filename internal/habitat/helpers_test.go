package habitat

// stubRef is a small in-memory ReferenceData for tests.
type stubRef struct {
	carbon   []CarbonRow
	distinct []DistinctivenessRow
}

func (s *stubRef) Carbon(category Category, subtype string) (CarbonRow, error) {
	for _, row := range s.carbon {
		if row.Category == category && row.Subtype == subtype {
			return row, nil
		}
	}
	return CarbonRow{}, &LookupError{Table: TableCarbon, Category: category, Subtype: subtype}
}

func (s *stubRef) Distinctiveness(category Category, subtype string) (DistinctivenessRow, error) {
	for _, row := range s.distinct {
		if row.Category == category && row.Subtype == subtype {
			return row, nil
		}
	}
	return DistinctivenessRow{}, &LookupError{Table: TableDistinctiveness, Category: category, Subtype: subtype}
}

func (s *stubRef) DistinctivenessRows() []DistinctivenessRow {
	return s.distinct
}

func (s *stubRef) CarbonRows(category Category) []CarbonRow {
	var out []CarbonRow
	for _, row := range s.carbon {
		if row.Category == category {
			out = append(out, row)
		}
	}
	return out
}

const x = NotPermittedSentinel

func times(good, fairlyGood, moderate, fairlyPoor, poor, naAgri, naOther float64) map[Condition]float64 {
	return map[Condition]float64{
		ConditionGood:           good,
		ConditionFairlyGood:     fairlyGood,
		ConditionModerate:       moderate,
		ConditionFairlyPoor:     fairlyPoor,
		ConditionPoor:           poor,
		ConditionNAAgricultural: naAgri,
		ConditionNAOther:        naOther,
	}
}

// newStubRef returns four categories: Farmland and Woodland (open
// transitions), Peatland (closed) and Hedgerow (absent from the rule table).
func newStubRef() *stubRef {
	return &stubRef{
		carbon: []CarbonRow{
			{Category: CategoryFarmland, Subtype: "Arable", StoredTonnesC: 50, FluxTonnesCO2e: 0.2},
			{Category: CategoryFarmland, Subtype: "Improved grassland", StoredTonnesC: 160, FluxTonnesCO2e: -0.1},
			{Category: CategoryWoodland, Subtype: "Broadleaved", StoredTonnesC: 350, FluxTonnesCO2e: -7.5},
			{Category: CategoryPeatland, Subtype: "Blanket Bog 200cm", StoredTonnesC: 1200, FluxTonnesCO2e: -0.8},
			{Category: CategoryHedgerow, Subtype: "Hedge", StoredTonnesC: 100, FluxTonnesCO2e: -1},
		},
		distinct: []DistinctivenessRow{
			{
				Category: CategoryFarmland, Subtype: "Cereal crops", Score: 2, Difficulty: 1,
				TimeToTarget: times(x, x, x, x, x, 0.965, x),
			},
			{
				Category: CategoryWoodland, Subtype: "Mixed deciduous", Score: 6, Difficulty: 0.33,
				TimeToTarget: times(0.32, 0.39, 0.49, 0.6, 0.7, x, x),
			},
			{
				Category: CategoryPeatland, Subtype: "Blanket bog", Score: 8, Difficulty: 0.1,
				TimeToTarget: times(x, x, 0.2, 0.25, 0.32, x, x),
			},
			{
				Category: CategoryHedgerow, Subtype: "Native hedgerow", Score: 4, Difficulty: 0.67,
				TimeToTarget: times(1, 1, 1, 1, 1, 1, 1),
			},
		},
	}
}

func farmlandBefore() Record {
	return Record{
		Category:          CategoryFarmland,
		DistinctSubtype:   "Cereal crops",
		CarbonSubtype:     "Arable",
		Size:              10,
		Storage:           50,
		Flux:              0.2,
		Distinctiveness:   2,
		Condition:         1.5,
		StrategicLocation: 1,
		Connectivity:      1,
	}
}

func peatlandBefore() Record {
	return Record{
		Category:          CategoryPeatland,
		DistinctSubtype:   "Blanket bog",
		CarbonSubtype:     "Blanket Bog 200cm",
		Size:              5,
		Storage:           1200,
		Flux:              -0.8,
		Distinctiveness:   8,
		Condition:         1,
		StrategicLocation: 1.1,
		Connectivity:      1.1,
	}
}
