// Package score rates deals on a 0-100 scale for portfolio ranking.
package score

import (
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/domain"
)

var (
	base    = decimal.NewFromInt(50)
	ceiling = decimal.NewFromInt(100)
)

// Service computes deal scores. It is deliberately separate from the
// cashflow engine: the score is a ranking heuristic, not a financial
// figure, and the aggregator treats it as an injected collaborator.
type Service struct{}

// NewService creates a score Service.
func NewService() *Service {
	return &Service{}
}

// Score rates a property between 0 and 100. The score starts at 50 and
// moves with the cash-on-cash return, the sign of the monthly cashflow,
// and the monthly rent-to-price yield. Properties without valid numbers
// score zero so averages can exclude them.
func (s *Service) Score(p domain.Property, cf domain.Cashflow) decimal.Decimal {
	if !p.HasValidNumbers() {
		return decimal.Zero
	}

	// Two score points per CoC percentage point, capped at +/-30.
	coc := cf.CashOnCashReturn.Mul(decimal.NewFromInt(2))
	coc = clamp(coc, decimal.NewFromInt(-30), decimal.NewFromInt(30))

	flow := decimal.NewFromInt(-10)
	if cf.MonthlyCashflow.GreaterThanOrEqual(decimal.Zero) {
		flow = decimal.NewFromInt(10)
	}

	// Monthly rent as a percent of price; the 1% rule scores +10.
	yield := domain.RatioPercent(p.EffectiveRent(), p.EffectivePrice())
	yieldPts := decimal.Zero
	switch {
	case yield.GreaterThanOrEqual(decimal.NewFromInt(1)):
		yieldPts = decimal.NewFromInt(10)
	case yield.GreaterThanOrEqual(decimal.NewFromFloat(0.7)):
		yieldPts = decimal.NewFromInt(5)
	case yield.LessThan(decimal.NewFromFloat(0.5)):
		yieldPts = decimal.NewFromInt(-10)
	}

	total := base.Add(coc).Add(flow).Add(yieldPts)
	return clamp(total, decimal.Zero, ceiling)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
