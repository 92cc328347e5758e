package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CashflowSettings is the assumption bundle for a single calculation.
// Percentages are per annum unless noted; rent-based percentages
// (vacancy, capex, management) apply to the monthly rent.
type CashflowSettings struct {
	InterestRate        float64         `json:"interestRate"`
	LoanTermYears       int             `json:"loanTermYears"`
	DownPaymentPercent  float64         `json:"downPaymentPercent"`
	TaxInsurancePercent float64         `json:"taxInsurancePercent"`
	VacancyPercent      float64         `json:"vacancyPercent"`
	CapexPercent        float64         `json:"capexPercent"`
	ManagementPercent   float64         `json:"managementPercent"`
	RehabAmount         decimal.Decimal `json:"rehabAmount"`
}

// DefaultSettings returns the baseline assumptions used when the caller
// supplies none. Per-property overrides are layered on top via portfolio
// settings resolution.
func DefaultSettings() CashflowSettings {
	return CashflowSettings{
		InterestRate:        7.0,
		LoanTermYears:       30,
		DownPaymentPercent:  20,
		TaxInsurancePercent: 1.5,
		VacancyPercent:      5,
		CapexPercent:        5,
		ManagementPercent:   8,
		RehabAmount:         decimal.Zero,
	}
}

// Validate checks the documented invariants.
func (s CashflowSettings) Validate() error {
	if s.DownPaymentPercent < 0 || s.DownPaymentPercent > 100 {
		return fmt.Errorf("down payment percent %v out of range [0,100]", s.DownPaymentPercent)
	}
	for name, v := range map[string]float64{
		"interest rate":  s.InterestRate,
		"tax/insurance":  s.TaxInsurancePercent,
		"vacancy":        s.VacancyPercent,
		"capex":          s.CapexPercent,
		"management fee": s.ManagementPercent,
	} {
		if v < 0 {
			return fmt.Errorf("%s percent must be non-negative, got %v", name, v)
		}
	}
	if s.LoanTermYears < 0 {
		return fmt.Errorf("loan term must be non-negative, got %d", s.LoanTermYears)
	}
	if s.RehabAmount.IsNegative() {
		return fmt.Errorf("rehab amount must be non-negative, got %s", s.RehabAmount)
	}
	return nil
}

// SettingsOverride is a sparse overlay of CashflowSettings. Nil fields
// fall through to the base settings during resolution.
type SettingsOverride struct {
	InterestRate        *float64         `json:"interestRate,omitempty"`
	LoanTermYears       *int             `json:"loanTermYears,omitempty"`
	DownPaymentPercent  *float64         `json:"downPaymentPercent,omitempty"`
	TaxInsurancePercent *float64         `json:"taxInsurancePercent,omitempty"`
	VacancyPercent      *float64         `json:"vacancyPercent,omitempty"`
	CapexPercent        *float64         `json:"capexPercent,omitempty"`
	ManagementPercent   *float64         `json:"managementPercent,omitempty"`
	RehabAmount         *decimal.Decimal `json:"rehabAmount,omitempty"`
}

// GrowthRates holds the global appreciation assumptions for projections.
type GrowthRates struct {
	RentPercent  float64 `json:"rentPercent"`
	ValuePercent float64 `json:"valuePercent"`
}
