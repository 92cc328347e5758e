package portfolio

import "github.com/rentradar/rentradar/internal/domain"

// ResolveSettings layers a per-property override over the base settings.
// Nil override fields fall through to the base; the merge happens in one
// place so call sites never do ad hoc optional-field fallbacks.
func ResolveSettings(base domain.CashflowSettings, o *domain.SettingsOverride) domain.CashflowSettings {
	if o == nil {
		return base
	}

	resolved := base
	if o.InterestRate != nil {
		resolved.InterestRate = *o.InterestRate
	}
	if o.LoanTermYears != nil {
		resolved.LoanTermYears = *o.LoanTermYears
	}
	if o.DownPaymentPercent != nil {
		resolved.DownPaymentPercent = *o.DownPaymentPercent
	}
	if o.TaxInsurancePercent != nil {
		resolved.TaxInsurancePercent = *o.TaxInsurancePercent
	}
	if o.VacancyPercent != nil {
		resolved.VacancyPercent = *o.VacancyPercent
	}
	if o.CapexPercent != nil {
		resolved.CapexPercent = *o.CapexPercent
	}
	if o.ManagementPercent != nil {
		resolved.ManagementPercent = *o.ManagementPercent
	}
	if o.RehabAmount != nil {
		resolved.RehabAmount = *o.RehabAmount
	}
	return resolved
}
