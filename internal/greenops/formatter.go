package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f half away from zero to precision digits and adds
// thousand separators.
// Example: FormatFloat(-1234.567, 2) returns "-1,234.57".
func FormatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier
	if rounded == 0 {
		// Avoid printing "-0.00".
		rounded = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), rounded)
}

// FormatSigned is FormatFloat with an explicit "+" on positive values.
func FormatSigned(f float64, precision int) string {
	s := FormatFloat(f, precision)
	if s[0] != '-' && math.Round(f*math.Pow(10, float64(precision))) != 0 {
		return "+" + s
	}
	return s
}

// FormatLarge abbreviates large magnitudes.
//
// Values below LargeNumberThreshold use comma-separated integers, values at
// or above it use "X.X million" and values at or above BillionThreshold
// use "X.X billion".
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}
