package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{123, "123"},
		{18248, "18,248"},
		{-1234, "-1,234"},
		{1234567890, "1,234,567,890"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{"round to integer", 18248.56, 0, "18,249"},
		{"one decimal place", 781.25, 1, "781.3"},
		{"two decimals with separator", 1234.567, 2, "1,234.57"},
		{"negative", -8.7645, 2, "-8.76"},
		{"negative below one", -0.5, 2, "-0.50"},
		{"negative zero suppressed", -0.001, 2, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+1,810.00", FormatSigned(1810, 2))
	assert.Equal(t, "-8.76", FormatSigned(-8.7645, 2))
	assert.Equal(t, "0.00", FormatSigned(0.001, 2))
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "999,999", FormatLarge(999_999))
	assert.Equal(t, "9.4 million", FormatLarge(9_427_083))
	assert.Equal(t, "1.5 billion", FormatLarge(1_500_000_000))
}

func TestNormalizeToKg_Overflow(t *testing.T) {
	_, err := NormalizeToKg(math.Inf(1), "kg")
	require.ErrorIs(t, err, ErrCalculationOverflow)

	_, err = NormalizeToKg(math.MaxFloat64, "t")
	require.ErrorIs(t, err, ErrCalculationOverflow)
}
