package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "SUMMARY"
	projectionSheet = "PROJECTION"
)

// XLSXWriter implements ReportWriter by writing a local .xlsx workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter that saves to the given path,
// overwriting any previous report.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write renders the report into SUMMARY and PROJECTION sheets.
func (w *XLSXWriter) Write(_ context.Context, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, summarySheet, buildSummaryValues(r)); err != nil {
		return err
	}
	if err := writeSheet(f, projectionSheet, buildProjectionValues(r)); err != nil {
		return err
	}

	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, values [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}

	for rowIdx, row := range values {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("resolving cell (%d,%d): %w", colIdx+1, rowIdx+1, err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("writing cell %s!%s: %w", name, cell, err)
			}
		}
	}
	return nil
}

// buildSummaryValues builds the SUMMARY sheet: report header, one row per
// selected property, portfolio totals and the holding-period returns.
func buildSummaryValues(r Report) [][]any {
	values := [][]any{
		{"Report", r.Name},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04 UTC")},
		{},
		{"Address", "Price", "Rent", "Rent Source", "Monthly Cashflow", "Initial Investment", "CoC %", "Score"},
	}

	for _, row := range r.Summary {
		values = append(values, []any{
			row.Address,
			toFloat(row.Price),
			toFloat(row.Rent),
			string(row.RentSource),
			toFloat(row.MonthlyCashflow),
			toFloat(row.InitialInvestment),
			toFloat(row.CashOnCashReturn),
			toFloat(row.Score),
		})
	}

	values = append(values,
		[]any{},
		[]any{"Properties", r.Metrics.PropertyCount},
		[]any{"Total Value", toFloat(r.Metrics.TotalValue)},
		[]any{"Total Invested", toFloat(r.Metrics.TotalInitialInvestment)},
		[]any{"Avg CoC %", toFloat(r.Metrics.AverageCashOnCash)},
		[]any{"Avg Score", toFloat(r.Metrics.AverageScore)},
		[]any{},
		[]any{"Holding Period", "IRR %"},
	)
	for _, hp := range r.Returns {
		v := any("n/a")
		if hp.Valid {
			v = toFloat(hp.Rate)
		}
		values = append(values, []any{hp.Label, v})
	}

	return values
}

// buildProjectionValues builds the PROJECTION sheet: one row per year.
func buildProjectionValues(r Report) [][]any {
	values := [][]any{
		{"Year", "Property Value", "Equity", "Cashflow"},
	}
	for _, y := range r.Projection {
		values = append(values, []any{
			y.Year,
			toFloat(y.PropertyValue),
			toFloat(y.Equity),
			toFloat(y.Cashflow),
		})
	}
	return values
}
