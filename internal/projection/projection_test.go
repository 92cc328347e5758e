package projection

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/cashflow"
	"github.com/rentradar/rentradar/internal/domain"
)

func testProperty() domain.Property {
	return domain.Property{
		ID:           "p1",
		Price:        decimal.NewFromInt(300000),
		RentEstimate: decimal.NewFromInt(2000),
	}
}

func testSettings() domain.CashflowSettings {
	return domain.CashflowSettings{
		InterestRate:        7,
		LoanTermYears:       30,
		DownPaymentPercent:  20,
		TaxInsurancePercent: 1.5,
		VacancyPercent:      5,
		CapexPercent:        5,
		ManagementPercent:   8,
	}
}

func TestProjectSeriesLength(t *testing.T) {
	rates := domain.GrowthRates{RentPercent: 3, ValuePercent: 3}

	series := Project(testProperty(), testSettings(), rates, 30)
	if len(series) != 31 {
		t.Fatalf("series length = %d, want 31", len(series))
	}
	if series[0].Year != 0 || series[30].Year != 30 {
		t.Errorf("year indices wrong: first=%d last=%d", series[0].Year, series[30].Year)
	}

	zeroYears := Project(testProperty(), testSettings(), rates, 0)
	if len(zeroYears) != 1 {
		t.Errorf("zero-horizon series length = %d, want 1", len(zeroYears))
	}
}

func TestProjectYearZeroEquityIsDownPayment(t *testing.T) {
	series := Project(testProperty(), testSettings(), domain.GrowthRates{}, 5)

	want := decimal.NewFromInt(60000) // 20% of 300000
	if !series[0].Equity.Equal(want) {
		t.Errorf("year-0 equity = %s, want down payment %s", series[0].Equity, want)
	}
	if !series[0].EquityGrowth.IsZero() {
		t.Errorf("year-0 equity growth = %s, want 0", series[0].EquityGrowth)
	}
}

func TestProjectYearZeroMatchesCashflow(t *testing.T) {
	p, s := testProperty(), testSettings()
	series := Project(p, s, domain.GrowthRates{RentPercent: 3, ValuePercent: 3}, 5)
	cf := cashflow.Compute(p, s)

	if !series[0].YearlyCashflow.Equal(cf.AnnualCashflow) {
		t.Errorf("year-0 cashflow = %s, want calculator annual %s",
			series[0].YearlyCashflow, cf.AnnualCashflow)
	}
	if !series[0].ROI.Equal(cf.CashOnCashReturn) {
		t.Errorf("year-0 ROI = %s, want CoC %s", series[0].ROI, cf.CashOnCashReturn)
	}
}

func TestProjectCompoundsFromInitialPrice(t *testing.T) {
	rates := domain.GrowthRates{RentPercent: 2, ValuePercent: 4}
	series := Project(testProperty(), testSettings(), rates, 10)

	value5, _ := series[5].PropertyValue.Float64()
	want := 300000 * math.Pow(1.04, 5)
	if math.Abs(value5-want) > 1 {
		t.Errorf("year-5 value = %.2f, want %.2f", value5, want)
	}

	rent5, _ := series[5].AnnualRent.Float64()
	wantRent := 2000 * 12 * math.Pow(1.02, 5)
	if math.Abs(rent5-wantRent) > 1 {
		t.Errorf("year-5 annual rent = %.2f, want %.2f", rent5, wantRent)
	}
}

func TestProjectEquityAtLoanTerm(t *testing.T) {
	// With no appreciation, equity at the end of the loan term equals the
	// property value: the balance has amortized to (effectively) zero.
	series := Project(testProperty(), testSettings(), domain.GrowthRates{}, 30)

	equity, _ := series[30].Equity.Float64()
	if math.Abs(equity-300000) > 0.01 {
		t.Errorf("equity at loan term = %.4f, want ~300000", equity)
	}
}

func TestProjectEquityGrowthChain(t *testing.T) {
	rates := domain.GrowthRates{RentPercent: 3, ValuePercent: 3}
	series := Project(testProperty(), testSettings(), rates, 10)

	for i := 1; i < len(series); i++ {
		want := series[i].Equity.Sub(series[i-1].Equity)
		if !series[i].EquityGrowth.Equal(want) {
			t.Errorf("year %d equity growth = %s, want %s", i, series[i].EquityGrowth, want)
		}
	}
}

func TestProjectMortgageFixedAcrossYears(t *testing.T) {
	// With zero growth rates every non-mortgage expense is constant too,
	// so yearly expenses must be identical across years 1..N.
	series := Project(testProperty(), testSettings(), domain.GrowthRates{}, 10)

	for i := 2; i < len(series); i++ {
		if !series[i].YearlyExpenses.Equal(series[1].YearlyExpenses) {
			t.Errorf("year %d expenses = %s, want fixed %s",
				i, series[i].YearlyExpenses, series[1].YearlyExpenses)
		}
	}
}

func TestProjectRestartable(t *testing.T) {
	rates := domain.GrowthRates{RentPercent: 3, ValuePercent: 3}

	a := Project(testProperty(), testSettings(), rates, 15)
	b := Project(testProperty(), testSettings(), rates, 15)

	for i := range a {
		if !a[i].Equity.Equal(b[i].Equity) || !a[i].YearlyCashflow.Equal(b[i].YearlyCashflow) {
			t.Fatalf("year %d differs between identical runs", i)
		}
	}
}

func TestProjectInvalidPropertyAllZero(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Property)
	}{
		{"zero price", func(p *domain.Property) { p.Price = decimal.Zero }},
		{"negative rent", func(p *domain.Property) { p.RentEstimate = decimal.NewFromInt(-100) }},
		{"rent only", func(p *domain.Property) { p.Price = decimal.Zero; p.RentEstimate = decimal.NewFromInt(1500) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testProperty()
			tc.mutate(&p)

			series := Project(p, testSettings(), domain.GrowthRates{RentPercent: 3, ValuePercent: 3}, 5)
			if len(series) != 6 {
				t.Fatalf("series length = %d, want 6", len(series))
			}
			for i, y := range series {
				if y.Year != i {
					t.Errorf("series[%d].Year = %d", i, y.Year)
				}
				if !y.PropertyValue.IsZero() || !y.Equity.IsZero() ||
					!y.YearlyCashflow.IsZero() || !y.AnnualRent.IsZero() ||
					!y.YearlyExpenses.IsZero() || !y.EquityGrowth.IsZero() ||
					!y.ROI.IsZero() || !y.ROIWithEquity.IsZero() {
					t.Errorf("year %d: invalid property produced non-zero figures: %+v", y.Year, y)
				}
			}
		})
	}
}
