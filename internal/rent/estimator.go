// Package rent estimates monthly rent for listings without one.
package rent

import (
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/domain"
)

// bedroomFactor adjusts the price-based fallback for unit size: small
// units rent slightly under and large units slightly over the flat rule.
func bedroomFactor(bedrooms int) decimal.Decimal {
	switch {
	case bedrooms <= 1:
		return decimal.NewFromFloat(0.90)
	case bedrooms >= 4:
		return decimal.NewFromFloat(1.08)
	default:
		return decimal.NewFromInt(1)
	}
}

// Estimator resolves a property's monthly rent, tagging its source.
type Estimator struct {
	fallbackPercent float64
}

// NewEstimator creates an Estimator. fallbackPercent is the monthly rent
// as a percent of price used when the provider supplies no estimate
// (0.8 approximates the classic "1% rule" after condition discounts).
func NewEstimator(fallbackPercent float64) *Estimator {
	return &Estimator{fallbackPercent: fallbackPercent}
}

// Estimate returns the monthly rent and its source. A positive provider
// estimate wins; otherwise the rent is computed from the price.
func (e *Estimator) Estimate(price decimal.Decimal, bedrooms int, providerRent decimal.Decimal) (decimal.Decimal, domain.RentSource) {
	if providerRent.GreaterThan(decimal.Zero) {
		return providerRent, domain.RentSourceProvider
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.RentSourceFallback
	}
	est := domain.PercentOf(price, e.fallbackPercent).Mul(bedroomFactor(bedrooms))
	return est, domain.RentSourceFallback
}
