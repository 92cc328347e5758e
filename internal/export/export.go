// Package export renders a saved analysis into spreadsheet reports.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/analysis"
	"github.com/rentradar/rentradar/internal/cashflow"
	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/portfolio"
	"github.com/rentradar/rentradar/internal/sharecode"
)

// SummaryRow holds one selected property's headline figures.
type SummaryRow struct {
	Address           string
	Price             decimal.Decimal
	Rent              decimal.Decimal
	RentSource        domain.RentSource
	MonthlyCashflow   decimal.Decimal
	InitialInvestment decimal.Decimal
	CashOnCashReturn  decimal.Decimal
	Score             decimal.Decimal
}

// Report is the full spreadsheet payload for one analysis.
type Report struct {
	Name        string
	GeneratedAt time.Time
	Summary     []SummaryRow
	Projection  []domain.AggregatedYear
	Metrics     domain.PortfolioMetrics
	Returns     []domain.HoldingPeriodReturn
}

// ReportWriter writes a report to a spreadsheet destination.
type ReportWriter interface {
	Write(ctx context.Context, r Report) error
}

// AnalysisSource is the saved-analysis surface the exporter reads from.
type AnalysisSource interface {
	List(ctx context.Context, limit int) ([]analysis.Summary, error)
	Get(ctx context.Context, id string) (*analysis.Analysis, sharecode.State, error)
}

// Service rebuilds portfolio reports from saved analyses and delegates
// writing to one or more ReportWriters.
type Service struct {
	analyses  AnalysisSource
	portfolio *portfolio.Service
	scorer    portfolio.Scorer
	writers   []ReportWriter
}

// NewService creates a new export Service.
func NewService(analyses AnalysisSource, pf *portfolio.Service, scorer portfolio.Scorer, writers ...ReportWriter) *Service {
	return &Service{
		analyses:  analyses,
		portfolio: pf,
		scorer:    scorer,
		writers:   writers,
	}
}

// ExportLatest rebuilds and writes the report for the most recently updated
// analysis. Implements worker.Exporter. Having no saved analysis is not an
// error; the run is skipped.
func (s *Service) ExportLatest(ctx context.Context) error {
	summaries, err := s.analyses.List(ctx, 1)
	if err != nil {
		return fmt.Errorf("listing analyses: %w", err)
	}
	if len(summaries) == 0 {
		slog.Info("export: no saved analyses, skipping")
		return nil
	}

	_, state, err := s.analyses.Get(ctx, summaries[0].ID)
	if err != nil {
		return fmt.Errorf("loading analysis %s: %w", summaries[0].ID, err)
	}

	report := s.BuildReport(summaries[0].Name, state)
	for _, w := range s.writers {
		if err := w.Write(ctx, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// BuildReport recomputes every figure in the report from the stored state.
func (s *Service) BuildReport(name string, state sharecode.State) Report {
	selected := make(map[string]bool, len(state.Selected))
	for _, id := range state.Selected {
		selected[id] = true
	}

	entries := lo.Map(state.Properties, func(p domain.Property, _ int) portfolio.Entry {
		e := portfolio.Entry{Property: p}
		if ov, ok := state.Overrides[p.ID]; ok {
			e.Overrides = &ov
		}
		return e
	})

	agg := s.portfolio.Aggregate(entries, selected, state.Settings, state.Rates, state.HorizonYears)

	var rows []SummaryRow
	for _, e := range entries {
		if !selected[e.Property.ID] {
			continue
		}
		settings := portfolio.ResolveSettings(state.Settings, e.Overrides)
		cf := cashflow.Compute(e.Property, settings)
		rows = append(rows, SummaryRow{
			Address:           e.Property.Address,
			Price:             e.Property.EffectivePrice(),
			Rent:              e.Property.EffectiveRent(),
			RentSource:        e.Property.RentSource,
			MonthlyCashflow:   cf.MonthlyCashflow,
			InitialInvestment: cf.InitialInvestment,
			CashOnCashReturn:  cf.CashOnCashReturn,
			Score:             s.scorer.Score(e.Property, cf),
		})
	}

	return Report{
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Summary:     rows,
		Projection:  agg.Years,
		Metrics:     agg.Metrics,
		Returns:     agg.Returns,
	}
}
