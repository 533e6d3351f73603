package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPoint(dataType string, value float64, date time.Time, sourceFile string) entity.RawDataPoint {
	v := value
	return entity.RawDataPoint{
		ID:         uuid.New(),
		Department: constants.FrontOffice,
		DataType:   dataType,
		Value:      &v,
		Date:       date,
		Source:     constants.SourcePDF,
		SourceFile: sourceFile,
		Metadata:   map[string]string{"unit": "rooms"},
		CreatedAt:  time.Now().UTC(),
	}
}

func TestSQLiteStore_InsertAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	n, err := s.InsertItems(ctx, []entity.RawDataPoint{
		testPoint("Occupied Rooms", 75, date, "daily.pdf"),
		testPoint("Available Rooms", 100, date, "daily.pdf"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted %d rows, want 2", n)
	}

	items, err := s.QueryItems(ctx, constants.FrontOffice, nil, nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Department != constants.FrontOffice {
		t.Errorf("department = %q", first.Department)
	}
	if !first.Date.Equal(date) {
		t.Errorf("date = %v, want %v", first.Date, date)
	}
	if first.Unit != "rooms" {
		t.Errorf("unit = %q, want rooms (from point metadata)", first.Unit)
	}
	if first.Value == nil {
		t.Fatal("value not round-tripped")
	}
}

func TestSQLiteStore_IdempotencyIndexIgnoresConflicts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	p := testPoint("Occupied Rooms", 75, date, "daily.pdf")
	if _, err := s.InsertItems(ctx, []entity.RawDataPoint{p}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same (department, date, kpi_name, source_file) and the same value
	// with a new ID: the unique index must swallow it, not error.
	again := testPoint("Occupied Rooms", 75, date, "daily.pdf")
	n, err := s.InsertItems(ctx, []entity.RawDataPoint{again})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if n != 0 {
		t.Errorf("re-insert affected %d rows, want 0", n)
	}

	items, err := s.QueryItems(ctx, constants.FrontOffice, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items after re-insert, want 1", len(items))
	}

	// Same identity but different source file is a distinct item.
	other := testPoint("Occupied Rooms", 75, date, "weekly.pdf")
	if n, err := s.InsertItems(ctx, []entity.RawDataPoint{other}); err != nil || n != 1 {
		t.Errorf("different source file: n=%d err=%v, want 1 row", n, err)
	}
}

func tableMetricPoint(value float64, table, row int, match string, date time.Time, sourceFile string) entity.RawDataPoint {
	v := value
	text := match
	return entity.RawDataPoint{
		ID:         uuid.New(),
		Department: constants.FoodBeverage,
		DataType:   "table_metric",
		Value:      &v,
		TextValue:  &text,
		Date:       date,
		Source:     constants.SourcePDFTable,
		SourceFile: sourceFile,
		Metadata: map[string]string{
			"kind":  "percentage",
			"match": match,
			"table": fmt.Sprintf("%d", table),
			"row":   fmt.Sprintf("%d", row),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestSQLiteStore_DistinctSameDayMeasurementsAllStored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	// two table rows share kpi_name, day, and file but are distinct
	// measurements; both must land
	batch := []entity.RawDataPoint{
		tableMetricPoint(35, 0, 1, "35%", date, "daily.pdf"),
		tableMetricPoint(28, 0, 2, "28%", date, "daily.pdf"),
	}
	n, err := s.InsertItems(ctx, batch)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted %d of 2 distinct table measurements", n)
	}

	items, err := s.QueryItems(ctx, constants.FoodBeverage, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want both measurements", len(items))
	}

	// re-ingesting the same rows is what the index swallows
	again := []entity.RawDataPoint{
		tableMetricPoint(35, 0, 1, "35%", date, "daily.pdf"),
		tableMetricPoint(28, 0, 2, "28%", date, "daily.pdf"),
	}
	if n, err := s.InsertItems(ctx, again); err != nil || n != 0 {
		t.Errorf("re-ingest: n=%d err=%v, want 0 new rows", n, err)
	}
}

func TestSQLiteStore_CorrectedValueIsNewEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	if _, err := s.InsertItems(ctx, []entity.RawDataPoint{
		testPoint("Occupied Rooms", 75, date, "daily.pdf"),
	}); err != nil {
		t.Fatal(err)
	}

	// same name, day, and file with a different value is a correction, not
	// a re-ingestion
	n, err := s.InsertItems(ctx, []entity.RawDataPoint{
		testPoint("Occupied Rooms", 82, date, "daily.pdf"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("corrected value inserted %d rows, want 1", n)
	}

	items, err := s.QueryItems(ctx, constants.FrontOffice, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want original and correction", len(items))
	}
}

func TestSQLiteStore_QueryDateWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var points []entity.RawDataPoint
	for d := 10; d <= 14; d++ {
		date := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
		points = append(points, testPoint("Occupied Rooms", float64(70+d), date, "daily.pdf"))
	}
	if _, err := s.InsertItems(ctx, points); err != nil {
		t.Fatal(err)
	}

	from := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)
	items, err := s.QueryItems(ctx, constants.FrontOffice, &from, &to)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3 (window is inclusive both ends)", len(items))
	}
	for _, it := range items {
		if it.Date.Before(from) || it.Date.After(to) {
			t.Errorf("item dated %v escapes the window", it.Date)
		}
	}
}

func TestSQLiteStore_QueryScopedByDepartment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	fo := testPoint("Occupied Rooms", 75, date, "daily.pdf")
	hk := testPoint("Rooms Cleaned", 40, date, "daily.pdf")
	hk.Department = constants.Housekeeping

	if _, err := s.InsertItems(ctx, []entity.RawDataPoint{fo, hk}); err != nil {
		t.Fatal(err)
	}

	items, err := s.QueryItems(ctx, constants.Housekeeping, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].KPIName != "Rooms Cleaned" {
		t.Fatalf("housekeeping query returned %v", items)
	}
}

func TestSQLiteStore_EmptyBatch(t *testing.T) {
	s := newTestStore(t)
	n, err := s.InsertItems(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("empty batch: n=%d err=%v", n, err)
	}
}
