// Package irr solves for the internal rate of return of a cash-flow series.
package irr

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	tolerance     = 1e-7
	maxIterations = 1000
	initialGuess  = 0.10
)

// Result is the outcome of an IRR solve. Rate is an annualized percentage
// and is zero whenever Valid is false. Callers must branch on Valid rather
// than on the numeric zero: 0% is also a legitimate rate.
type Result struct {
	Rate   decimal.Decimal `json:"rate"`
	Valid  bool            `json:"valid"`
	Reason string          `json:"reason,omitempty"`
}

func invalid(reason string) Result {
	return Result{Rate: decimal.Zero, Reason: reason}
}

// Solve finds the rate at which the net present value of the flow series
// [-initialInvestment, flows[0], ..., flows[n-1]+terminal] is zero, using
// Newton's method seeded at 10%. The terminal value is folded into the last
// period's flow, not appended as an extra period. The series must contain
// both a positive and a negative flow; otherwise no root exists and the
// result is invalid.
func Solve(initialInvestment decimal.Decimal, flows []decimal.Decimal, terminal decimal.Decimal) Result {
	if initialInvestment.LessThanOrEqual(decimal.Zero) {
		return invalid("initial investment must be positive")
	}
	if len(flows) == 0 {
		return invalid("no cash flows")
	}

	vec := make([]float64, len(flows)+1)
	vec[0] = -initialInvestment.InexactFloat64()
	for i, f := range flows {
		vec[i+1] = f.InexactFloat64()
	}
	vec[len(vec)-1] += terminal.InexactFloat64()

	hasPositive, hasNegative := false, false
	for _, v := range vec {
		if v > 0 {
			hasPositive = true
		}
		if v < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return invalid("cash flows never change sign")
	}

	r := initialGuess
	for range maxIterations {
		npv, dnpv := evaluate(vec, r)
		if math.Abs(dnpv) < tolerance {
			return invalid("derivative vanished")
		}

		next := r - npv/dnpv
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return invalid("iteration diverged")
		}
		if math.Abs(next-r) < tolerance {
			return Result{Rate: decimal.NewFromFloat(next * 100), Valid: true}
		}
		r = next
	}

	return invalid("did not converge")
}

// evaluate returns the net present value and its derivative at rate r:
// npv(r) = sum flow_t/(1+r)^t, dnpv(r) = sum -t*flow_t/(1+r)^(t+1) for t>0.
func evaluate(vec []float64, r float64) (npv, dnpv float64) {
	for t, flow := range vec {
		discounted := flow / math.Pow(1+r, float64(t))
		npv += discounted
		if t > 0 {
			dnpv -= float64(t) * flow / math.Pow(1+r, float64(t+1))
		}
	}
	return npv, dnpv
}
