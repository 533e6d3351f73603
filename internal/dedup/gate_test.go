package dedup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// fakeStore serves canned items and records the query window it was asked for.
type fakeStore struct {
	items    []entity.StoredItem
	err      error
	lastFrom *time.Time
	lastTo   *time.Time
}

func (f *fakeStore) InsertItems(context.Context, []entity.RawDataPoint) (int, error) {
	return 0, nil
}

func (f *fakeStore) QueryItems(_ context.Context, _ constants.Department, from, to *time.Time) ([]entity.StoredItem, error) {
	f.lastFrom, f.lastTo = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeStore) Close() error { return nil }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPoint(dataType string, value float64, date time.Time) entity.RawDataPoint {
	v := value
	return entity.RawDataPoint{
		ID:         uuid.New(),
		Department: constants.FrontOffice,
		DataType:   dataType,
		Value:      &v,
		Date:       date,
		Source:     constants.SourcePDF,
		SourceFile: "daily.pdf",
	}
}

func storedItem(kpiName string, value float64, date time.Time) entity.StoredItem {
	v := value
	return entity.StoredItem{
		ID:         uuid.New(),
		Department: constants.FrontOffice,
		KPIName:    kpiName,
		Value:      &v,
		Date:       date,
		Source:     constants.SourcePDF,
		SourceFile: "older.pdf",
	}
}

func TestPartitionPoints_SplitsNewAndDuplicate(t *testing.T) {
	d := day(2025, time.March, 14)
	store := &fakeStore{items: []entity.StoredItem{
		storedItem("Occupied Rooms", 75, d),
	}}
	gate := NewGate(store, 0, nil)

	points := []entity.RawDataPoint{
		newPoint("Occupied Rooms", 75, d),   // exact duplicate
		newPoint("Available Rooms", 100, d), // nothing stored
	}

	p := gate.PartitionPoints(context.Background(), points)
	if len(p.Duplicates) != 1 || len(p.NewData) != 1 {
		t.Fatalf("got %d new / %d dup, want 1/1", len(p.NewData), len(p.Duplicates))
	}
	if p.Duplicates[0].DataType != "Occupied Rooms" {
		t.Errorf("duplicate = %q", p.Duplicates[0].DataType)
	}
}

func TestPartitionPoints_EpsilonTolerance(t *testing.T) {
	d := day(2025, time.March, 14)
	store := &fakeStore{items: []entity.StoredItem{
		storedItem("Occupied Rooms", 75.0, d),
	}}
	gate := NewGate(store, 0.01, nil)

	within := newPoint("Occupied Rooms", 75.009, d)
	outside := newPoint("Occupied Rooms", 75.02, d)

	p := gate.PartitionPoints(context.Background(), []entity.RawDataPoint{within, outside})
	if len(p.Duplicates) != 1 {
		t.Errorf("value within epsilon must be a duplicate, got %d duplicates", len(p.Duplicates))
	}
	if len(p.NewData) != 1 {
		t.Errorf("value outside epsilon must be new, got %d new", len(p.NewData))
	}
}

func TestPartitionPoints_ResolvesLabelsBeforeComparing(t *testing.T) {
	// The store holds the canonical name; the incoming point carries a raw
	// label that resolves to it.
	d := day(2025, time.March, 14)
	store := &fakeStore{items: []entity.StoredItem{
		storedItem("Occupied Rooms", 75, d),
	}}
	gate := NewGate(store, 0, nil)

	p := gate.PartitionPoints(context.Background(), []entity.RawDataPoint{
		newPoint("occupied_rooms", 75, d),
	})
	if len(p.Duplicates) != 1 {
		t.Fatalf("legacy label must dedup against canonical item, got %d duplicates", len(p.Duplicates))
	}
}

func TestPartitionPoints_DifferentDayIsNew(t *testing.T) {
	store := &fakeStore{items: []entity.StoredItem{
		storedItem("Occupied Rooms", 75, day(2025, time.March, 13)),
	}}
	gate := NewGate(store, 0, nil)

	p := gate.PartitionPoints(context.Background(), []entity.RawDataPoint{
		newPoint("Occupied Rooms", 75, day(2025, time.March, 14)),
	})
	if len(p.NewData) != 1 {
		t.Fatalf("same value on a new day must be new data")
	}
}

func TestPartitionPoints_QueryScopedToBatchDates(t *testing.T) {
	store := &fakeStore{}
	gate := NewGate(store, 0, nil)

	gate.PartitionPoints(context.Background(), []entity.RawDataPoint{
		newPoint("Occupied Rooms", 75, day(2025, time.March, 12)),
		newPoint("Occupied Rooms", 80, day(2025, time.March, 15)),
		newPoint("Occupied Rooms", 78, day(2025, time.March, 13)),
	})

	if store.lastFrom == nil || !store.lastFrom.Equal(day(2025, time.March, 12)) {
		t.Errorf("query from = %v, want batch min date", store.lastFrom)
	}
	if store.lastTo == nil || !store.lastTo.Equal(day(2025, time.March, 15)) {
		t.Errorf("query to = %v, want batch max date", store.lastTo)
	}
}

func TestPartitionPoints_FailsOpenOnStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	gate := NewGate(store, 0, nil)

	points := []entity.RawDataPoint{
		newPoint("Occupied Rooms", 75, day(2025, time.March, 14)),
	}
	p := gate.PartitionPoints(context.Background(), points)
	if len(p.NewData) != 1 || len(p.Duplicates) != 0 {
		t.Fatalf("gate must fail open: got %d new / %d dup", len(p.NewData), len(p.Duplicates))
	}
}

func TestPartitionPoints_EmptyBatch(t *testing.T) {
	gate := NewGate(&fakeStore{}, 0, nil)
	p := gate.PartitionPoints(context.Background(), nil)
	if p.NewData == nil || p.Duplicates == nil {
		t.Fatal("empty batch must yield empty, non-nil slices")
	}
	if len(p.NewData) != 0 || len(p.Duplicates) != 0 {
		t.Fatalf("got %d new / %d dup, want 0/0", len(p.NewData), len(p.Duplicates))
	}
}
