package scenario

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/offsetcalc/internal/habitat"
	"github.com/rshade/offsetcalc/internal/refdata"
)

func embeddedBuilder(t *testing.T) *habitat.Builder {
	t.Helper()
	tables, err := refdata.Embedded()
	require.NoError(t, err)
	return habitat.NewBuilder(tables)
}

func TestGenerator_SeededIsReproducible(t *testing.T) {
	b := embeddedBuilder(t)

	first := New(b, WithSeed(42))
	second := New(b, WithSeed(42))
	for range 20 {
		a, err := first.Before()
		require.NoError(t, err)
		c, err := second.Before()
		require.NoError(t, err)
		assert.Equal(t, a, c)
	}
}

func TestGenerator_DrawsFromOptionSets(t *testing.T) {
	b := embeddedBuilder(t)
	g := New(b, WithRand(rand.New(rand.NewPCG(1, 2))))

	for range 200 {
		p, err := g.Params()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, p.Size, DefaultMinSize)
		assert.Less(t, p.Size, DefaultMaxSize)
		assert.True(t, slices.Contains(habitat.BeforeConditions(), p.Condition), "condition %g", p.Condition)
		assert.True(t, slices.Contains(habitat.StrategicLocations(), p.StrategicLocation))

		_, err = b.ReferenceData().Carbon(p.Category, p.CarbonSubtype)
		require.NoError(t, err, "carbon subtype must share the distinctiveness category")

		rec, err := b.Before(p)
		require.NoError(t, err)
		assert.False(t, rec.PostIntervention)
	}
}

func TestGenerator_SizeRange(t *testing.T) {
	b := embeddedBuilder(t)

	rec, err := New(b, WithSeed(7), WithSizeRange(3, 3)).Before()
	require.NoError(t, err)
	assert.Equal(t, 3.0, rec.Size)

	tests := []struct {
		name     string
		min, max float64
	}{
		{"zero minimum", 0, 10},
		{"inverted", 10, 5},
		{"negative", -4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(b, WithSeed(1), WithSizeRange(tt.min, tt.max)).Before()
			assert.ErrorIs(t, err, ErrInvalidSizeRange)
		})
	}
}

func TestGenerator_NoCandidates(t *testing.T) {
	tables, err := refdata.NewTables(nil, []habitat.DistinctivenessRow{
		{Category: habitat.CategoryHedgerow, Subtype: "Native hedgerow", Score: 4, Difficulty: 1},
	})
	require.NoError(t, err)

	_, err = New(habitat.NewBuilder(tables), WithSeed(1)).Before()
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGenerator_UnseededStillWorks(t *testing.T) {
	rec, err := New(embeddedBuilder(t)).Before()
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Name())
}
