package factorlab

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Percent is a value expressed in percent (1.5 is 1.5%).
type Percent float64

// PercentOf converts a fraction (0.015) into a Percent (1.5%).
func PercentOf(fraction float64) Percent { return Percent(fraction * 100) }

// Fraction returns the percent as a fraction (1.5% is 0.015).
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Round returns the percent rounded half away from zero to the given number of decimals.
// A result of negative zero is returned as zero.
func (p Percent) Round(places int32) Percent {
	if !p.IsFinite() {
		return p
	}
	d := decimal.NewFromFloat(float64(p)).Round(places)
	// decimal has no negative zero, so the conversion normalizes -0.0 to 0.0.
	return Percent(d.InexactFloat64())
}

// IsFinite reports whether the percent is neither NaN nor infinite.
func (p Percent) IsFinite() bool {
	return !math.IsNaN(float64(p)) && !math.IsInf(float64(p), 0)
}

// IsNegative reports whether the percent, as displayed with one decimal, is negative.
func (p Percent) IsNegative() bool { return p.Round(1) < 0 }

func (p Percent) String() string {
	if !p.IsFinite() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p.Round(1))
}

func (p Percent) SignedString() string {
	if !p.IsFinite() {
		return "n/a"
	}
	res := fmt.Sprintf("%+.1f%%", p.Round(1))
	if res == "+0.0%" {
		return "-"
	}
	return res
}
