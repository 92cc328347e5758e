// Package mortgage computes fixed-rate loan payments and amortization.
package mortgage

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyPayment computes the fixed monthly payment for a loan using the
// standard annuity formula M = L*r(1+r)^n / ((1+r)^n - 1), where r is the
// monthly rate and n the number of monthly periods. A zero rate degrades to
// an even split L/n. Non-positive loan amounts or terms yield zero.
// The power factor is computed in float64; the result returns to decimal.
func MonthlyPayment(loanAmount decimal.Decimal, annualRatePercent float64, termYears int) decimal.Decimal {
	n := termYears * 12
	if n <= 0 || loanAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	r := annualRatePercent / 100 / 12
	if r == 0 {
		return loanAmount.Div(decimal.NewFromInt(int64(n)))
	}

	factor := math.Pow(1+r, float64(n))
	payment := loanAmount.InexactFloat64() * r * factor / (factor - 1)
	return decimal.NewFromFloat(payment)
}

// Loan carries the terms fixed at origination: the monthly payment and the
// monthly interest rate. The outstanding balance is not part of the value;
// callers thread it through Advance explicitly, which keeps year-by-year
// projection steps independently testable.
type Loan struct {
	Payment     decimal.Decimal
	monthlyRate decimal.Decimal
}

// NewLoan fixes the payment and rate for a loan at origination.
func NewLoan(amount decimal.Decimal, annualRatePercent float64, termYears int) Loan {
	return Loan{
		Payment:     MonthlyPayment(amount, annualRatePercent, termYears),
		monthlyRate: decimal.NewFromFloat(annualRatePercent / 100 / 12),
	}
}

// Advance walks the given number of monthly payments from balance and
// returns the remaining balance. Each month pays interest first; the
// balance is clamped at zero once the loan is paid off, and further months
// are no-ops.
func (l Loan) Advance(balance decimal.Decimal, months int) decimal.Decimal {
	for range months {
		if balance.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		interest := balance.Mul(l.monthlyRate)
		principal := l.Payment.Sub(interest)
		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
	}
	return balance
}
