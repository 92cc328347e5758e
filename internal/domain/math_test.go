package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "0"},
		{"not-a-number", "0"},
		{"123.45", "123.45"},
		{"-10", "-10"},
		{"0.0000001", "0.0000001"},
	}

	for _, tt := range tests {
		got := SafeParse(tt.input)
		if got.String() != tt.want {
			t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestSafeDivZeroDenominator(t *testing.T) {
	result := SafeDiv(decimal.NewFromInt(100), decimal.Zero)
	if !result.IsZero() {
		t.Errorf("SafeDiv by zero = %s, want 0", result)
	}
}

func TestPercentOf(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(300000), 1.5)
	want := decimal.NewFromInt(4500)
	if !got.Equal(want) {
		t.Errorf("PercentOf(300000, 1.5) = %s, want %s", got, want)
	}
}

func TestGrowthFactorZeroYears(t *testing.T) {
	if f := GrowthFactor(3, 0); !f.Equal(decimal.NewFromInt(1)) {
		t.Errorf("GrowthFactor(3, 0) = %s, want 1", f)
	}
}

func TestGrowthFactorCompounds(t *testing.T) {
	f, _ := GrowthFactor(10, 2).Float64()
	if f < 1.2099 || f > 1.2101 {
		t.Errorf("GrowthFactor(10, 2) = %f, want ~1.21", f)
	}
}

func TestRatioPercentGuards(t *testing.T) {
	if r := RatioPercent(decimal.NewFromInt(50), decimal.Zero); !r.IsZero() {
		t.Errorf("RatioPercent with zero denominator = %s, want 0", r)
	}
	if r := RatioPercent(decimal.NewFromInt(50), decimal.NewFromInt(-10)); !r.IsZero() {
		t.Errorf("RatioPercent with negative denominator = %s, want 0", r)
	}
	r := RatioPercent(decimal.NewFromInt(50), decimal.NewFromInt(200))
	if !r.Equal(decimal.NewFromInt(25)) {
		t.Errorf("RatioPercent(50, 200) = %s, want 25", r)
	}
}

func TestEffectivePriceOverride(t *testing.T) {
	override := decimal.NewFromInt(275000)
	p := Property{
		Price:         decimal.NewFromInt(300000),
		PriceOverride: &override,
	}
	if !p.EffectivePrice().Equal(override) {
		t.Errorf("EffectivePrice = %s, want override %s", p.EffectivePrice(), override)
	}

	zero := decimal.Zero
	p.PriceOverride = &zero
	if !p.EffectivePrice().Equal(decimal.NewFromInt(300000)) {
		t.Error("zero override should fall through to listing price")
	}
}

func TestEffectiveRentCustom(t *testing.T) {
	custom := decimal.NewFromInt(2200)
	p := Property{
		RentEstimate: decimal.NewFromInt(2000),
		CustomRent:   &custom,
	}
	if !p.EffectiveRent().Equal(custom) {
		t.Errorf("EffectiveRent = %s, want custom %s", p.EffectiveRent(), custom)
	}
}

func TestHasValidNumbers(t *testing.T) {
	valid := Property{Price: decimal.NewFromInt(100000), RentEstimate: decimal.NewFromInt(1000)}
	if !valid.HasValidNumbers() {
		t.Error("property with positive price and rent should be valid")
	}

	zeroPrice := Property{RentEstimate: decimal.NewFromInt(1000)}
	if zeroPrice.HasValidNumbers() {
		t.Error("property with zero price should be invalid")
	}

	negRent := Property{Price: decimal.NewFromInt(100000), RentEstimate: decimal.NewFromInt(-1)}
	if negRent.HasValidNumbers() {
		t.Error("property with negative rent should be invalid")
	}

	zeroRent := Property{Price: decimal.NewFromInt(100000)}
	if !zeroRent.HasValidNumbers() {
		t.Error("zero rent is allowed")
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}

	s.DownPaymentPercent = 120
	if err := s.Validate(); err == nil {
		t.Error("down payment over 100 should fail validation")
	}

	s = DefaultSettings()
	s.VacancyPercent = -1
	if err := s.Validate(); err == nil {
		t.Error("negative vacancy should fail validation")
	}

	s = DefaultSettings()
	s.RehabAmount = decimal.NewFromInt(-500)
	if err := s.Validate(); err == nil {
		t.Error("negative rehab should fail validation")
	}
}
