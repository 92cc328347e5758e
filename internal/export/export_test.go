package export

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/analysis"
	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/portfolio"
	"github.com/rentradar/rentradar/internal/score"
	"github.com/rentradar/rentradar/internal/sharecode"
)

type fakeSource struct {
	summaries []analysis.Summary
	state     sharecode.State
	listErr   error
}

func (f *fakeSource) List(_ context.Context, _ int) ([]analysis.Summary, error) {
	return f.summaries, f.listErr
}

func (f *fakeSource) Get(_ context.Context, id string) (*analysis.Analysis, sharecode.State, error) {
	return &analysis.Analysis{ID: id}, f.state, nil
}

type captureWriter struct {
	reports []Report
}

func (c *captureWriter) Write(_ context.Context, r Report) error {
	c.reports = append(c.reports, r)
	return nil
}

func testState() sharecode.State {
	return sharecode.State{
		Properties: []domain.Property{
			{
				ID:           "p1",
				Address:      "123 Main St, Austin, TX",
				Price:        decimal.NewFromInt(300000),
				RentEstimate: decimal.NewFromInt(2000),
				Bedrooms:     3,
				RentSource:   domain.RentSourceProvider,
			},
			{
				ID:           "p2",
				Address:      "456 Oak Ave, Austin, TX",
				Price:        decimal.NewFromInt(200000),
				RentEstimate: decimal.NewFromInt(1500),
				Bedrooms:     2,
				RentSource:   domain.RentSourceFallback,
			},
		},
		Selected:     []string{"p1"},
		Settings:     domain.DefaultSettings(),
		Rates:        domain.GrowthRates{RentPercent: 3, ValuePercent: 4},
		HorizonYears: 10,
	}
}

func newTestService(src AnalysisSource, writers ...ReportWriter) *Service {
	scorer := score.NewService()
	return NewService(src, portfolio.NewService(scorer), scorer, writers...)
}

func TestBuildReportSelectedOnly(t *testing.T) {
	svc := newTestService(&fakeSource{})
	report := svc.BuildReport("Austin deals", testState())

	if report.Name != "Austin deals" {
		t.Errorf("name = %q", report.Name)
	}
	if len(report.Summary) != 1 {
		t.Fatalf("summary rows = %d, want 1 (only selected)", len(report.Summary))
	}
	if report.Summary[0].Address != "123 Main St, Austin, TX" {
		t.Errorf("address = %q", report.Summary[0].Address)
	}
	if !report.Summary[0].InitialInvestment.Equal(decimal.NewFromInt(69000)) {
		t.Errorf("initial investment = %s, want 69000", report.Summary[0].InitialInvestment)
	}
	if len(report.Projection) != 11 {
		t.Errorf("projection years = %d, want 11", len(report.Projection))
	}
	if report.Metrics.PropertyCount != 1 {
		t.Errorf("property count = %d, want 1", report.Metrics.PropertyCount)
	}
}

func TestBuildReportAppliesOverrides(t *testing.T) {
	state := testState()
	down := 50.0
	state.Overrides = map[string]domain.SettingsOverride{
		"p1": {DownPaymentPercent: &down},
	}

	svc := newTestService(&fakeSource{})
	report := svc.BuildReport("overridden", state)

	// 50% down plus 3% closing costs on $300k.
	if !report.Summary[0].InitialInvestment.Equal(decimal.NewFromInt(159000)) {
		t.Errorf("initial investment = %s, want 159000", report.Summary[0].InitialInvestment)
	}
}

func TestExportLatestWritesReport(t *testing.T) {
	src := &fakeSource{
		summaries: []analysis.Summary{{ID: "a1", Name: "latest"}},
		state:     testState(),
	}
	writer := &captureWriter{}
	svc := newTestService(src, writer)

	if err := svc.ExportLatest(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(writer.reports) != 1 {
		t.Fatalf("reports written = %d, want 1", len(writer.reports))
	}
	if writer.reports[0].Name != "latest" {
		t.Errorf("report name = %q", writer.reports[0].Name)
	}
}

func TestExportLatestNoAnalysesSkips(t *testing.T) {
	writer := &captureWriter{}
	svc := newTestService(&fakeSource{}, writer)

	if err := svc.ExportLatest(context.Background()); err != nil {
		t.Fatalf("expected skip without error, got %v", err)
	}
	if len(writer.reports) != 0 {
		t.Errorf("reports written = %d, want 0", len(writer.reports))
	}
}

func TestSummaryValuesRenderInvalidReturnsAsNA(t *testing.T) {
	r := Report{
		Returns: []domain.HoldingPeriodReturn{
			{Label: "5y", Years: 5, Rate: decimal.NewFromFloat(8.2), Valid: true},
			{Label: "30y", Years: 30, Valid: false, Reason: "beyond projection horizon"},
		},
	}

	values := buildSummaryValues(r)
	last := values[len(values)-1]
	if last[0] != "30y" || last[1] != any("n/a") {
		t.Errorf("invalid return row = %v, want [30y n/a]", last)
	}
}
