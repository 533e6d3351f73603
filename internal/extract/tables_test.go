package extract

import (
	"testing"
	"time"

	"github.com/kofiasare/hotelmetrics/constants"
)

func TestExtractTableRows_SkipsHeaderRow(t *testing.T) {
	tables := [][][]string{
		{
			{"Metric", "Value"},
			{"Occupancy", "75%"},
		},
	}
	dates := []time.Time{day(2025, time.March, 14)}

	points := ExtractTableRows(tables, constants.FrontOffice, dates, "report.csv")
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1 (header row must be skipped)", len(points))
	}

	p := points[0]
	if p.DataType != "table_metric" {
		t.Errorf("data type = %q, want table_metric", p.DataType)
	}
	if p.Source != constants.SourcePDFTable {
		t.Errorf("source = %q, want %q", p.Source, constants.SourcePDFTable)
	}
	if *p.Value != 75 {
		t.Errorf("value = %v, want 75", *p.Value)
	}
	if p.Metadata["kind"] != "percentage" {
		t.Errorf("kind = %q, want percentage", p.Metadata["kind"])
	}
	if p.Metadata["row"] != "1" || p.Metadata["table"] != "0" {
		t.Errorf("coordinates = table %q row %q, want 0/1", p.Metadata["table"], p.Metadata["row"])
	}
}

func TestExtractTableRows_PatternKinds(t *testing.T) {
	tables := [][][]string{
		{
			{"h1", "h2"},
			{"ADR", "GHS 320.50"},
			{"Avg cleaning", "24 minutes"},
		},
	}
	dates := []time.Time{day(2025, time.March, 14)}

	points := ExtractTableRows(tables, constants.Housekeeping, dates, "x.xlsx")

	kinds := map[string]float64{}
	for _, p := range points {
		kinds[p.Metadata["kind"]] = *p.Value
	}
	if kinds["currency"] != 320.50 {
		t.Errorf("currency = %v, want 320.50", kinds["currency"])
	}
	if kinds["duration"] != 24 {
		t.Errorf("duration = %v, want 24", kinds["duration"])
	}
}

func TestExtractTableRows_EmptyAndBlankRows(t *testing.T) {
	tables := [][][]string{
		{
			{"only", "header"},
		},
		{
			{"h"},
			{"", "  "},
			{"no numbers here"},
		},
	}
	points := ExtractTableRows(tables, constants.FrontOffice, []time.Time{day(2025, time.March, 14)}, "x.csv")
	if len(points) != 0 {
		t.Fatalf("got %d points, want 0", len(points))
	}
}
