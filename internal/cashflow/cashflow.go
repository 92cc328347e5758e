// Package cashflow computes one-period income/expense breakdowns.
package cashflow

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/mortgage"
)

// closingCostPercent is the fixed closing-cost estimate applied to the
// purchase price when computing the initial investment.
const closingCostPercent = 3.0

// LoanAmount returns the financed portion of the effective price.
func LoanAmount(price decimal.Decimal, s domain.CashflowSettings) decimal.Decimal {
	return price.Sub(domain.PercentOf(price, s.DownPaymentPercent))
}

// InitialInvestment is the cash required to close: down payment plus the
// closing-cost estimate plus any one-time rehab budget.
func InitialInvestment(price decimal.Decimal, s domain.CashflowSettings) decimal.Decimal {
	return domain.PercentOf(price, s.DownPaymentPercent).
		Add(domain.PercentOf(price, closingCostPercent)).
		Add(s.RehabAmount)
}

// Compute derives the monthly cashflow breakdown for a property under the
// given settings. It is a pure function of its inputs. A property without
// valid numbers (non-positive price or negative rent) yields a zero
// breakdown rather than an error, so a single bad record cannot poison an
// aggregation.
func Compute(p domain.Property, s domain.CashflowSettings) domain.Cashflow {
	if !p.HasValidNumbers() {
		return domain.Cashflow{}
	}

	price := p.EffectivePrice()
	rent := p.EffectiveRent()

	cf := domain.Cashflow{
		MonthlyMortgage:     mortgage.MonthlyPayment(LoanAmount(price, s), s.InterestRate, s.LoanTermYears),
		MonthlyTaxInsurance: domain.Monthly(domain.PercentOf(price, s.TaxInsurancePercent)),
		MonthlyVacancy:      domain.PercentOf(rent, s.VacancyPercent),
		MonthlyCapex:        domain.PercentOf(rent, s.CapexPercent),
		MonthlyManagement:   domain.PercentOf(rent, s.ManagementPercent),
	}

	cf.TotalMonthlyExpenses = lo.Reduce([]decimal.Decimal{
		cf.MonthlyMortgage,
		cf.MonthlyTaxInsurance,
		cf.MonthlyVacancy,
		cf.MonthlyCapex,
		cf.MonthlyManagement,
	}, func(acc, v decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(v)
	}, decimal.Zero)

	cf.MonthlyCashflow = rent.Sub(cf.TotalMonthlyExpenses)
	cf.AnnualCashflow = domain.Annual(cf.MonthlyCashflow)
	cf.InitialInvestment = InitialInvestment(price, s)
	cf.CashOnCashReturn = domain.RatioPercent(cf.AnnualCashflow, cf.InitialInvestment)

	return cf
}
