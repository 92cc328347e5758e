package domain

import "github.com/shopspring/decimal"

// Cashflow is one period's (monthly) income/expense breakdown for a
// property under a settings bundle. TotalMonthlyExpenses is always the
// exact sum of the five expense components, and MonthlyCashflow is always
// rent minus that total; no other code path re-derives either number.
type Cashflow struct {
	MonthlyMortgage      decimal.Decimal `json:"monthlyMortgage"`
	MonthlyTaxInsurance  decimal.Decimal `json:"monthlyTaxInsurance"`
	MonthlyVacancy       decimal.Decimal `json:"monthlyVacancy"`
	MonthlyCapex         decimal.Decimal `json:"monthlyCapex"`
	MonthlyManagement    decimal.Decimal `json:"monthlyManagement"`
	TotalMonthlyExpenses decimal.Decimal `json:"totalMonthlyExpenses"`
	MonthlyCashflow      decimal.Decimal `json:"monthlyCashflow"`
	AnnualCashflow       decimal.Decimal `json:"annualCashflow"`
	InitialInvestment    decimal.Decimal `json:"initialInvestment"`
	CashOnCashReturn     decimal.Decimal `json:"cashOnCashReturn"`
}

// YearlyProjection is one row of a long-term projection series.
// Year 0 is the present. Equity may go negative if value depreciates
// faster than the loan pays down; that is not guarded.
type YearlyProjection struct {
	Year           int             `json:"year"`
	PropertyValue  decimal.Decimal `json:"propertyValue"`
	AnnualRent     decimal.Decimal `json:"annualRent"`
	YearlyExpenses decimal.Decimal `json:"yearlyExpenses"`
	YearlyCashflow decimal.Decimal `json:"yearlyCashflow"`
	Equity         decimal.Decimal `json:"equity"`
	EquityGrowth   decimal.Decimal `json:"equityGrowth"`
	ROI            decimal.Decimal `json:"roi"`
	ROIWithEquity  decimal.Decimal `json:"roiWithEquity"`
}
