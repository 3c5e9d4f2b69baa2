package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowDays is the length of the trailing aggregation window.
const WindowDays = 30

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// ResolveAsOf returns asOf, or the current time when asOf is zero.
func ResolveAsOf(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return time.Now()
	}
	return asOf
}

// Window returns the trailing window [asOf-30d, asOf].
func Window(asOf time.Time) (start, end time.Time) {
	end = ResolveAsOf(asOf)
	return end.Add(-WindowDays * day), end
}

func inWindow(t, start, end time.Time) bool {
	return !t.IsZero() && !t.Before(start) && !t.After(end)
}

func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
