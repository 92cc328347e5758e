package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeDiv divides a by b, returning zero when the denominator is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// PercentOf returns amount * pct / 100.
func PercentOf(amount decimal.Decimal, pct float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(pct)).Div(hundred)
}

// Monthly divides an annual amount by 12.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Annual multiplies a monthly amount by 12.
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// GrowthFactor returns (1 + pct/100)^years as a decimal. The power is
// computed in float64; monetary arithmetic stays in decimal at call sites.
func GrowthFactor(pct float64, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(math.Pow(1+pct/100, float64(years)))
}

// RatioPercent returns num/denom*100 guarded against a non-positive
// denominator, which yields zero rather than NaN or infinity.
func RatioPercent(num, denom decimal.Decimal) decimal.Decimal {
	if denom.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(denom).Mul(hundred)
}
