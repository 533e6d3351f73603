// Package export produces XLSX workbooks from stored items and calculation
// results.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
	"github.com/kofiasare/hotelmetrics/internal/repository"
)

// Service is a tiny façade over the item store that produces XLSX bytes.
type Service struct {
	store  repository.ItemStore
	logger *slog.Logger
}

func NewService(store repository.ItemStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportItemsXLSX returns an XLSX workbook (as bytes) for the given department
// and date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all items for the department.
func (s *Service) ExportItemsXLSX(ctx context.Context, department constants.Department, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	items, err := s.store.QueryItems(ctx, department, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Items"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Department",
		"KPI",
		"Value",
		"Unit",
		"Source",
		"Source File",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !it.Date.IsZero() {
			write(1, it.Date.Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, string(it.Department))
		write(3, it.KPIName)
		if it.Value != nil {
			write(4, *it.Value)
		} else if it.TextValue != nil {
			write(4, *it.TextValue)
		} else {
			write(4, "")
		}
		write(5, it.Unit)
		write(6, string(it.Source))
		write(7, it.SourceFile)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 22) // department
	_ = f.SetColWidth(sheet, "C", "C", 30) // kpi
	_ = f.SetColWidth(sheet, "D", "E", 14) // value, unit
	_ = f.SetColWidth(sheet, "F", "F", 12) // source
	_ = f.SetColWidth(sheet, "G", "G", 40) // file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"department", string(department),
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportResultsXLSX writes computed KPI results to a workbook, one row per
// result, grouped the way the calculation engine emitted them.
func (s *Service) ExportResultsXLSX(results []entity.KpiCalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "KPIs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"KPI", "Value", "Unit", "Bucket Date", "Period", "Confidence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.KPIName)
		write(2, r.Value)
		write(3, r.Unit)
		write(4, r.Date.Format("2006-01-02"))
		write(5, string(r.Period))
		write(6, r.Confidence)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 14)
	_ = f.SetColWidth(sheet, "F", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
