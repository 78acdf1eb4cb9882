package habitat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiodiversityUnits(t *testing.T) {
	tests := []struct {
		name                   string
		size, d, c, s, conn    float64
		difficulty, time, risk float64
		wantPre, wantPost      float64
	}{
		{
			name: "farmland reference scenario",
			size: 10, d: 2, c: 1.5, s: 1, conn: 1,
			difficulty: 1, time: 1, risk: 1,
			wantPre: 30, wantPost: 30,
		},
		{
			name: "high distinctiveness with post factors",
			size: 4, d: 6, c: 2.5, s: 1.15, conn: 1.1,
			difficulty: 0.33, time: 0.39, risk: 1,
			wantPre: 4 * 6 * 2.5 * 1.15 * 1.1, wantPost: 4 * 6 * 2.5 * 1.15 * 1.1 * 0.33 * 0.39,
		},
		{
			name: "zero condition",
			size: 12, d: 4, c: 0, s: 1, conn: 1,
			difficulty: 1, time: 1, risk: 1,
			wantPre: 0, wantPost: 0,
		},
		{
			name: "negative size propagates",
			size: -2, d: 2, c: 1, s: 1, conn: 1,
			difficulty: 1, time: 1, risk: 1,
			wantPre: -4, wantPost: -4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantPre, BiodiversityUnits(tt.size, tt.d, tt.c, tt.s, tt.conn), 1e-9)
			assert.InDelta(t, tt.wantPost,
				PostInterventionBiodiversityUnits(tt.size, tt.d, tt.c, tt.s, tt.conn, tt.difficulty, tt.time, tt.risk),
				1e-9)
		})
	}
}

func TestBiodiversityUnits_ExactProduct(t *testing.T) {
	size, d, c, s, conn := 13.85438003606401, 2.0, 1.5, 1.1, 1.0
	assert.Equal(t, size*d*c*s*conn, BiodiversityUnits(size, d, c, s, conn))
}

func TestCarbonTonnes(t *testing.T) {
	tests := []struct {
		name                string
		size, storage, flux float64
		years               float64
		post                bool
		want                float64
	}{
		{name: "farmland reference scenario", size: 10, storage: 50, flux: 0.2, years: 30, want: 440},
		{name: "sequestering habitat keeps storage", size: 2, storage: 100, flux: -1, years: 30, want: 260},
		{name: "post intervention ignores storage", size: 10, storage: 50, flux: 0.2, years: 30, post: true, want: -60},
		{name: "post intervention sequestration", size: 10, storage: 9999, flux: -7.5, years: 30, post: true, want: 2250},
		{name: "zero years", size: 3, storage: 40, flux: 2, years: 0, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CarbonTonnes(tt.size, tt.storage, tt.flux, tt.years, tt.post), 1e-9)
		})
	}
}

func TestCarbonTonnes_PostIgnoresStorageValue(t *testing.T) {
	for _, storage := range []float64{0, 1, 500, -20} {
		assert.Equal(t, CarbonTonnes(7, 0, 0.4, DefaultYears, true), CarbonTonnes(7, storage, 0.4, DefaultYears, true))
	}
}

func TestRecord_Units(t *testing.T) {
	before := farmlandBefore()
	assert.InDelta(t, 30.0, before.BiodiversityUnits(), 1e-9)
	assert.InDelta(t, 440.0, before.CarbonTonnes(DefaultYears), 1e-9)

	after := before
	after.PostIntervention = true
	after.Difficulty = 0.5
	after.TimeToTarget = 0.8
	after.OffSiteRisk = 1
	assert.InDelta(t, 30*0.5*0.8, after.BiodiversityUnits(), 1e-9)
	assert.InDelta(t, -60.0, after.CarbonTonnes(DefaultYears), 1e-9)
}

func TestConnectivityFor(t *testing.T) {
	for score := 0; score <= 8; score++ {
		want := ConnectivityBase
		if score >= 6 {
			want = ConnectivityHigh
		}
		assert.Equal(t, want, ConnectivityFor(score), "score %d", score)
	}
}
