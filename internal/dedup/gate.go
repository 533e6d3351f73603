// Package dedup filters freshly extracted data points against items already
// persisted for the same department, date, and canonical KPI name.
package dedup

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/kofiasare/hotelmetrics/internal/catalog"
	"github.com/kofiasare/hotelmetrics/internal/entity"
	"github.com/kofiasare/hotelmetrics/internal/repository"
)

// DefaultEpsilon is the absolute value tolerance under which two measurements
// count as the same. It guards against floating-point and rounding noise
// without masking genuinely new measurements.
const DefaultEpsilon = 0.01

// Partition is the gate's outcome: points safe to persist and points the
// store already holds.
type Partition struct {
	NewData    []entity.RawDataPoint
	Duplicates []entity.RawDataPoint
}

// Gate compares incoming points against the item store.
type Gate struct {
	store   repository.ItemStore
	epsilon float64
	logger  *slog.Logger
}

func NewGate(store repository.ItemStore, epsilon float64, logger *slog.Logger) *Gate {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, epsilon: epsilon, logger: logger}
}

// PartitionPoints splits points into new data and duplicates. The store is
// consulted read-only, scoped to the batch's own min/max dates. A point is a
// duplicate when the store holds an item with the same canonical KPI name,
// the same calendar day, and a value within epsilon.
//
// If the store read fails the gate fails open: everything is treated as new
// and ingestion proceeds, since the storage layer's idempotency key catches
// true duplicates at insert time anyway.
func (g *Gate) PartitionPoints(ctx context.Context, points []entity.RawDataPoint) Partition {
	if len(points) == 0 {
		return Partition{
			NewData:    []entity.RawDataPoint{},
			Duplicates: []entity.RawDataPoint{},
		}
	}

	department := points[0].Department
	from, to := dateBounds(points)

	existing, err := g.store.QueryItems(ctx, department, &from, &to)
	if err != nil {
		g.logger.Warn("dedup read failed, treating all points as new",
			"department", department,
			"error", err,
		)
		return Partition{NewData: points, Duplicates: []entity.RawDataPoint{}}
	}

	index := make(map[string][]entity.StoredItem, len(existing))
	for _, item := range existing {
		key := itemKey(item.KPIName, item.Date)
		index[key] = append(index[key], item)
	}

	p := Partition{
		NewData:    make([]entity.RawDataPoint, 0, len(points)),
		Duplicates: make([]entity.RawDataPoint, 0),
	}
	for _, point := range points {
		canonical := catalog.Resolve(point.DataType, point.Department)
		if g.isDuplicate(index[itemKey(canonical, point.Day())], point) {
			p.Duplicates = append(p.Duplicates, point)
			continue
		}
		p.NewData = append(p.NewData, point)
	}

	g.logger.Info("dedup.partition.ok",
		"department", department,
		"new", len(p.NewData),
		"duplicates", len(p.Duplicates),
	)
	return p
}

func (g *Gate) isDuplicate(candidates []entity.StoredItem, point entity.RawDataPoint) bool {
	for _, item := range candidates {
		if point.Value == nil || item.Value == nil {
			// non-numeric KPIs dedup on name+date alone
			if point.Value == nil && item.Value == nil {
				return true
			}
			continue
		}
		if math.Abs(*item.Value-*point.Value) <= g.epsilon {
			return true
		}
	}
	return false
}

func itemKey(kpiName string, day time.Time) string {
	return kpiName + "|" + day.Format("2006-01-02")
}

func dateBounds(points []entity.RawDataPoint) (time.Time, time.Time) {
	min, max := points[0].Day(), points[0].Day()
	for _, p := range points[1:] {
		d := p.Day()
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}
