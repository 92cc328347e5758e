package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/domain"
)

func TestResolveSettingsNilOverride(t *testing.T) {
	base := domain.DefaultSettings()
	if got := ResolveSettings(base, nil); got != base {
		t.Errorf("nil override changed settings: %+v", got)
	}
}

func TestResolveSettingsPartialOverride(t *testing.T) {
	base := domain.DefaultSettings()

	rate := 5.5
	down := 25.0
	rehab := decimal.NewFromInt(10000)
	o := &domain.SettingsOverride{
		InterestRate:       &rate,
		DownPaymentPercent: &down,
		RehabAmount:        &rehab,
	}

	got := ResolveSettings(base, o)
	if got.InterestRate != 5.5 {
		t.Errorf("interest rate = %v, want 5.5", got.InterestRate)
	}
	if got.DownPaymentPercent != 25 {
		t.Errorf("down payment = %v, want 25", got.DownPaymentPercent)
	}
	if !got.RehabAmount.Equal(rehab) {
		t.Errorf("rehab = %s, want %s", got.RehabAmount, rehab)
	}

	// Everything else falls through.
	if got.LoanTermYears != base.LoanTermYears {
		t.Errorf("loan term = %v, want base %v", got.LoanTermYears, base.LoanTermYears)
	}
	if got.VacancyPercent != base.VacancyPercent {
		t.Errorf("vacancy = %v, want base %v", got.VacancyPercent, base.VacancyPercent)
	}
}

func TestResolveSettingsZeroValueOverride(t *testing.T) {
	// An explicit zero is a real override, distinct from an absent field.
	base := domain.DefaultSettings()
	zero := 0.0
	o := &domain.SettingsOverride{ManagementPercent: &zero}

	got := ResolveSettings(base, o)
	if got.ManagementPercent != 0 {
		t.Errorf("management = %v, want explicit 0", got.ManagementPercent)
	}
}
