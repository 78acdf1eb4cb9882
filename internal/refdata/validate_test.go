package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/offsetcalc/internal/habitat"
)

func TestValidate(t *testing.T) {
	carbon := []habitat.CarbonRow{
		{Category: habitat.CategoryFarmland, Subtype: "Arable", StoredTonnesC: 50, FluxTonnesCO2e: 0.2},
	}
	distinct := []habitat.DistinctivenessRow{
		{Category: habitat.CategoryFarmland, Subtype: "Cereal crops", Score: 2, Difficulty: 1, TimeToTarget: fullTimes(1)},
		{
			Category: habitat.CategoryFarmland, Subtype: "Odd", Score: 9, Difficulty: 1,
			TimeToTarget: map[habitat.Condition]float64{habitat.ConditionPoor: 1},
		},
		{Category: habitat.CategoryHedgerow, Subtype: "Native hedgerow", Score: 4, Difficulty: 1, TimeToTarget: fullTimes(1)},
	}
	tables, err := NewTables(carbon, distinct)
	require.NoError(t, err)

	issues := Validate(tables, habitat.DefaultTransitionRules())
	require.True(t, HasErrors(issues))

	var errs, warnings int
	for _, i := range issues {
		switch i.Severity {
		case SeverityError:
			errs++
			assert.Equal(t, "Odd", i.Subtype)
		case SeverityWarning:
			warnings++
			assert.Equal(t, string(habitat.CategoryHedgerow), i.Category)
		}
	}
	// One score issue plus six missing labels.
	assert.Equal(t, 7, errs)
	// Hedgerow has neither carbon rows nor a transition rule.
	assert.Equal(t, 2, warnings)
}

func TestIssue_String(t *testing.T) {
	i := Issue{Severity: SeverityWarning, Table: "carbon", Category: "Hedgerow", Message: "no rows"}
	assert.Equal(t, "[warning] carbon/Hedgerow: no rows", i.String())

	i.Subtype = "Native"
	assert.Equal(t, "[warning] carbon/Hedgerow/Native: no rows", i.String())

	assert.False(t, HasErrors([]Issue{i}))
	assert.False(t, HasErrors(nil))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{"", SourceEmbedded, " Embedded "} {
		tables, err := Open(ctx, Source{Kind: kind})
		require.NoError(t, err, kind)
		nc, _ := tables.Len()
		assert.Equal(t, 10, nc)
	}

	_, err := Open(ctx, Source{Kind: "postgres"})
	assert.ErrorIs(t, err, ErrUnknownSource)

	_, err = Open(ctx, Source{Kind: SourceBundle})
	require.Error(t, err)

	assert.Equal(t, []string{"embedded", "csv", "bundle", "sqlite"}, SourceKinds())
}
