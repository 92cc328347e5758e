// Package projection produces multi-year equity/value projections.
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/cashflow"
	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/mortgage"
)

// Project iterates year by year, compounding rent and property value from
// the initial effective price (value_i = price*(1+g)^i) and tracking
// amortization and equity. The returned series has length years+1 with
// year 0 as the present. The mortgage payment is fixed at origination;
// tax/insurance scales with the appreciated value and the rent-based
// reserves scale with the appreciated rent. Each call recomputes from
// scratch; the loan balance is the only state carried across years, and it
// is threaded explicitly through mortgage.Loan.Advance.
func Project(p domain.Property, s domain.CashflowSettings, rates domain.GrowthRates, years int) []domain.YearlyProjection {
	if years < 0 {
		years = 0
	}

	// A property without valid numbers contributes zero to every year,
	// not just year 0.
	if !p.HasValidNumbers() {
		out := make([]domain.YearlyProjection, years+1)
		for i := range out {
			out[i].Year = i
		}
		return out
	}

	price := p.EffectivePrice()
	rent := p.EffectiveRent()
	cf := cashflow.Compute(p, s)

	loanAmount := cashflow.LoanAmount(price, s)
	loan := mortgage.NewLoan(loanAmount, s.InterestRate, s.LoanTermYears)
	balance := loanAmount

	downPayment := domain.PercentOf(price, s.DownPaymentPercent)

	out := make([]domain.YearlyProjection, 0, years+1)
	out = append(out, domain.YearlyProjection{
		Year:           0,
		PropertyValue:  price,
		AnnualRent:     domain.Annual(rent),
		YearlyExpenses: domain.Annual(cf.TotalMonthlyExpenses),
		YearlyCashflow: cf.AnnualCashflow,
		Equity:         downPayment,
		EquityGrowth:   decimal.Zero,
		ROI:            cf.CashOnCashReturn,
		ROIWithEquity:  cf.CashOnCashReturn,
	})

	prevEquity := downPayment
	for year := 1; year <= years; year++ {
		value := price.Mul(domain.GrowthFactor(rates.ValuePercent, year))
		monthlyRent := rent.Mul(domain.GrowthFactor(rates.RentPercent, year))

		monthlyExpenses := cf.MonthlyMortgage.
			Add(domain.Monthly(domain.PercentOf(value, s.TaxInsurancePercent))).
			Add(domain.PercentOf(monthlyRent, s.VacancyPercent)).
			Add(domain.PercentOf(monthlyRent, s.CapexPercent)).
			Add(domain.PercentOf(monthlyRent, s.ManagementPercent))

		yearlyExpenses := domain.Annual(monthlyExpenses)
		yearlyCashflow := domain.Annual(monthlyRent).Sub(yearlyExpenses)

		balance = loan.Advance(balance, 12)
		equity := value.Sub(balance)
		growth := equity.Sub(prevEquity)
		prevEquity = equity

		out = append(out, domain.YearlyProjection{
			Year:           year,
			PropertyValue:  value,
			AnnualRent:     domain.Annual(monthlyRent),
			YearlyExpenses: yearlyExpenses,
			YearlyCashflow: yearlyCashflow,
			Equity:         equity,
			EquityGrowth:   growth,
			ROI:            domain.RatioPercent(yearlyCashflow, cf.InitialInvestment),
			ROIWithEquity:  domain.RatioPercent(yearlyCashflow.Add(growth), cf.InitialInvestment),
		})
	}

	return out
}
