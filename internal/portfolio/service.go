// Package portfolio aggregates per-property projections and cashflows.
package portfolio

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/cashflow"
	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/irr"
	"github.com/rentradar/rentradar/internal/projection"
)

// holdingPeriods are the fixed horizons reported for portfolio IRR.
var holdingPeriods = []int{5, 10, 15, 20, 30}

// Scorer is the deal-ranking collaborator. Scores are not financial
// figures; the aggregator only averages them.
type Scorer interface {
	Score(p domain.Property, cf domain.Cashflow) decimal.Decimal
}

// Entry pairs a property with its optional assumption override.
type Entry struct {
	Property  domain.Property          `json:"property"`
	Overrides *domain.SettingsOverride `json:"overrides,omitempty"`
}

// Service aggregates selected properties into portfolio totals.
type Service struct {
	scorer Scorer
}

// NewService creates a portfolio Service.
func NewService(scorer Scorer) *Service {
	return &Service{scorer: scorer}
}

// Aggregate combines the selected entries' cashflows and projections into
// per-year totals, monthly component sums, summary metrics and
// holding-period IRRs. Every call recomputes everything from the inputs;
// selection changes never leave stale contributions behind. Properties
// without valid numbers contribute zero to every sum and are excluded from
// the CoC and score averages.
func (s *Service) Aggregate(
	entries []Entry,
	selected map[string]bool,
	base domain.CashflowSettings,
	rates domain.GrowthRates,
	horizonYears int,
) domain.AggregatedPortfolio {
	if horizonYears < 0 {
		horizonYears = 0
	}

	chosen := lo.Filter(entries, func(e Entry, _ int) bool {
		return selected[e.Property.ID]
	})

	agg := domain.AggregatedPortfolio{
		Years: make([]domain.AggregatedYear, horizonYears+1),
	}
	for i := range agg.Years {
		agg.Years[i].Year = i
	}

	var cocSum, scoreSum decimal.Decimal
	var validCount int

	for _, e := range chosen {
		settings := ResolveSettings(base, e.Overrides)
		cf := cashflow.Compute(e.Property, settings)
		series := projection.Project(e.Property, settings, rates, horizonYears)

		agg.Monthly.RentalIncome = agg.Monthly.RentalIncome.Add(effectiveRentOrZero(e.Property))
		agg.Monthly.Mortgage = agg.Monthly.Mortgage.Add(cf.MonthlyMortgage)
		agg.Monthly.TaxInsurance = agg.Monthly.TaxInsurance.Add(cf.MonthlyTaxInsurance)
		agg.Monthly.Vacancy = agg.Monthly.Vacancy.Add(cf.MonthlyVacancy)
		agg.Monthly.Capex = agg.Monthly.Capex.Add(cf.MonthlyCapex)
		agg.Monthly.Management = agg.Monthly.Management.Add(cf.MonthlyManagement)

		for i, y := range series {
			agg.Years[i].PropertyValue = agg.Years[i].PropertyValue.Add(y.PropertyValue)
			agg.Years[i].Equity = agg.Years[i].Equity.Add(y.Equity)
			agg.Years[i].Cashflow = agg.Years[i].Cashflow.Add(y.YearlyCashflow)
		}

		if e.Property.HasValidNumbers() {
			agg.Metrics.TotalValue = agg.Metrics.TotalValue.Add(e.Property.EffectivePrice())
			agg.Metrics.TotalInitialInvestment = agg.Metrics.TotalInitialInvestment.Add(cf.InitialInvestment)
			cocSum = cocSum.Add(cf.CashOnCashReturn)
			if s.scorer != nil {
				scoreSum = scoreSum.Add(s.scorer.Score(e.Property, cf))
			}
			validCount++
		}
	}

	agg.Monthly.Cashflow = agg.Monthly.RentalIncome.
		Sub(agg.Monthly.Mortgage).
		Sub(agg.Monthly.TaxInsurance).
		Sub(agg.Monthly.Vacancy).
		Sub(agg.Monthly.Capex).
		Sub(agg.Monthly.Management)

	// Single source of truth for the year-0 flow: 12x the monthly
	// component sum. The per-property loop above computes the logically
	// identical number; this assignment keeps one code path authoritative.
	agg.Years[0].Cashflow = domain.Annual(agg.Monthly.Cashflow)

	agg.Metrics.PropertyCount = len(chosen)
	if validCount > 0 {
		n := decimal.NewFromInt(int64(validCount))
		agg.Metrics.AverageCashOnCash = cocSum.Div(n)
		agg.Metrics.AverageScore = scoreSum.Div(n)
	}

	agg.Returns = s.holdingPeriodReturns(agg, horizonYears)
	return agg
}

// holdingPeriodReturns computes the portfolio IRR for each fixed holding
// period within the horizon. The flow array spans years 0..h; terminal
// equity at year h is folded into the final flow by the solver.
func (s *Service) holdingPeriodReturns(agg domain.AggregatedPortfolio, horizonYears int) []domain.HoldingPeriodReturn {
	returns := make([]domain.HoldingPeriodReturn, 0, len(holdingPeriods))

	for _, h := range holdingPeriods {
		hp := domain.HoldingPeriodReturn{
			Label: fmt.Sprintf("%d Year", h),
			Years: h,
			Rate:  decimal.Zero,
		}
		if h > horizonYears {
			hp.Reason = "beyond projection horizon"
			returns = append(returns, hp)
			continue
		}

		flows := lo.Map(agg.Years[:h+1], func(y domain.AggregatedYear, _ int) decimal.Decimal {
			return y.Cashflow
		})
		res := irr.Solve(agg.Metrics.TotalInitialInvestment, flows, agg.Years[h].Equity)

		hp.Rate = res.Rate
		hp.Valid = res.Valid
		hp.Reason = res.Reason
		returns = append(returns, hp)
	}

	return returns
}

func effectiveRentOrZero(p domain.Property) decimal.Decimal {
	if !p.HasValidNumbers() {
		return decimal.Zero
	}
	return p.EffectiveRent()
}
