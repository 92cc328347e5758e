package domain

import "github.com/shopspring/decimal"

// AggregatedYear is one year's totals across all selected properties.
type AggregatedYear struct {
	Year          int             `json:"year"`
	PropertyValue decimal.Decimal `json:"propertyValue"`
	Equity        decimal.Decimal `json:"equity"`
	Cashflow      decimal.Decimal `json:"cashflow"`
}

// MonthlyBreakdown sums the monthly cashflow components across properties.
type MonthlyBreakdown struct {
	RentalIncome decimal.Decimal `json:"rentalIncome"`
	Mortgage     decimal.Decimal `json:"mortgage"`
	TaxInsurance decimal.Decimal `json:"taxInsurance"`
	Vacancy      decimal.Decimal `json:"vacancy"`
	Capex        decimal.Decimal `json:"capex"`
	Management   decimal.Decimal `json:"management"`
	Cashflow     decimal.Decimal `json:"cashflow"`
}

// PortfolioMetrics holds summary figures for the selected set.
// Averages are taken over properties with valid numbers only.
type PortfolioMetrics struct {
	TotalValue             decimal.Decimal `json:"totalValue"`
	TotalInitialInvestment decimal.Decimal `json:"totalInitialInvestment"`
	AverageCashOnCash      decimal.Decimal `json:"averageCashOnCash"`
	AverageScore           decimal.Decimal `json:"averageScore"`
	PropertyCount          int             `json:"propertyCount"`
}

// HoldingPeriodReturn is the portfolio IRR for one fixed holding period.
// Rate is zero whenever Valid is false; callers must render availability
// from Valid, never from the numeric zero.
type HoldingPeriodReturn struct {
	Label  string          `json:"label"`
	Years  int             `json:"years"`
	Rate   decimal.Decimal `json:"rate"`
	Valid  bool            `json:"valid"`
	Reason string          `json:"reason,omitempty"`
}

// AggregatedPortfolio combines the selected properties' projections and
// cashflows. Years[0].Cashflow equals Monthly.Cashflow x 12 by construction.
type AggregatedPortfolio struct {
	Years   []AggregatedYear      `json:"years"`
	Monthly MonthlyBreakdown      `json:"monthly"`
	Metrics PortfolioMetrics      `json:"metrics"`
	Returns []HoldingPeriodReturn `json:"returns"`
}
