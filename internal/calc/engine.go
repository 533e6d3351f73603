// Package calc computes derived KPIs from raw extracted data points over
// calendar-aligned time buckets.
package calc

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/catalog"
	"github.com/kofiasare/hotelmetrics/internal/common"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// Engine evaluates the KPI catalog's formulas per time bucket.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewEngine(cat *catalog.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{catalog: cat, logger: logger}
}

// Calculate computes one KpiCalculationResult per (catalog definition × time
// bucket) over the department's data points. Invalid dates or malformed
// points abort the whole call; a single failing formula is logged and only
// that KPI/bucket pair is omitted.
func (e *Engine) Calculate(points []entity.RawDataPoint, department constants.Department, start, end time.Time, period Period) ([]entity.KpiCalculationResult, error) {
	if start.IsZero() || end.IsZero() {
		return nil, common.InvalidInputError("start and end dates are required")
	}
	if end.Before(start) {
		return nil, common.InvalidInputErrorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	for i, p := range points {
		if p.Department == "" || p.DataType == "" || p.Date.IsZero() || p.Value == nil {
			return nil, common.DataStructureError(fmt.Sprintf(
				"data point %d is missing department, dataType, date, or value", i))
		}
	}

	results := make([]entity.KpiCalculationResult, 0)
	if len(points) == 0 {
		return results, nil
	}

	defs := e.catalog.ForDepartment(department)
	buckets := BuildBuckets(start, end, period)

	for _, bucket := range buckets {
		grouped := e.groupByDataType(department, points, bucket)
		if len(grouped.values) == 0 {
			continue
		}

		for _, def := range defs {
			result, ok := e.calculateOne(def, bucket, period, grouped)
			if ok {
				results = append(results, result)
			}
		}
	}

	return results, nil
}

// calculateOne evaluates a single definition against one bucket. A panicking
// formula is caught here so it cannot abort sibling calculations.
func (e *Engine) calculateOne(def catalog.Definition, bucket TimeBucket, period Period, grouped groupedPoints) (result entity.KpiCalculationResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("calc.formula.panic",
				"kpi", def.Name,
				"bucket", bucket.Label,
				"panic", r,
			)
			ok = false
		}
	}()

	value, used := evaluate(def, grouped)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return entity.KpiCalculationResult{}, false
	}

	return entity.KpiCalculationResult{
		KPIName:    def.Name,
		Value:      round2(value),
		Unit:       def.Unit,
		Date:       bucket.Start,
		Period:     string(period),
		Confidence: confidence(used, def.CalculationType),
		Metadata: map[string]string{
			"period_label":     bucket.Label,
			"calculation_type": string(def.CalculationType),
			"display_name":     def.DisplayName,
			"points":           fmt.Sprintf("%d", used),
		},
	}, true
}

// groupedPoints indexes one bucket's point values by machine data type.
type groupedPoints struct {
	values map[string][]float64
}

// groupByDataType buckets point values under the catalog machine name.
// Points may arrive tagged either way — machine names straight from the
// extractor, or canonical display names read back from the store — so both
// are folded onto the machine name before formulas run.
func (e *Engine) groupByDataType(department constants.Department, points []entity.RawDataPoint, bucket TimeBucket) groupedPoints {
	g := groupedPoints{values: make(map[string][]float64)}
	for _, p := range points {
		if !bucket.Contains(p.Day()) {
			continue
		}
		key := p.DataType
		if def, ok := e.catalog.Find(department, key); ok {
			key = def.Name
		}
		g.values[key] = append(g.values[key], *p.Value)
	}
	return g
}

func (g groupedPoints) sum(dataType string) (float64, int) {
	var s float64
	vs := g.values[dataType]
	for _, v := range vs {
		s += v
	}
	return s, len(vs)
}

// evaluate picks the bespoke formula for well-known KPIs and falls back to
// the generic formula keyed by the definition's calculation type. Missing
// inputs yield 0, never an error.
func evaluate(def catalog.Definition, g groupedPoints) (value float64, used int) {
	switch def.Name {
	case "occupancy_rate":
		occupied, n1 := g.sum("occupied_rooms")
		available, n2 := g.sum("available_rooms")
		if available == 0 {
			return 0, n1 + n2
		}
		return occupied / available * 100, n1 + n2
	case "adr":
		revenue, n1 := g.sum("revenue")
		occupied, n2 := g.sum("occupied_rooms")
		if occupied == 0 {
			return 0, n1 + n2
		}
		return revenue / occupied, n1 + n2
	case "revpar":
		revenue, n1 := g.sum("revenue")
		available, n2 := g.sum("available_rooms")
		if available == 0 {
			return 0, n1 + n2
		}
		return revenue / available, n1 + n2
	case "average_check":
		// mean over the F&B check inputs plus directly reported averages
		inputs := def.RequiredInputs
		if len(inputs) == 0 {
			inputs = []string{"check_amount"}
		}
		inputs = append(inputs, def.Name)
		var total float64
		var n int
		for _, in := range inputs {
			s, c := g.sum(in)
			total += s
			n += c
		}
		if n == 0 {
			return 0, 0
		}
		return total / float64(n), n
	}

	return evaluateGeneric(def, g)
}

// evaluateGeneric is the fallback for catalog entries without a bespoke
// formula: simple=mean, aggregated=sum. Ratio and derived entries without a
// bespoke formula have no generic evaluation yet and report 0.
func evaluateGeneric(def catalog.Definition, g groupedPoints) (float64, int) {
	s, n := g.sum(def.Name)
	switch def.CalculationType {
	case constants.CalcSimple:
		if n == 0 {
			return 0, 0
		}
		return s / float64(n), n
	case constants.CalcAggregated:
		return s, n
	default:
		return 0, n
	}
}

// confidence reflects that thin samples and indirect formulas are less
// trustworthy, without ever fully zeroing out a result.
func confidence(pointCount int, calcType constants.CalculationType) float64 {
	c := math.Min(float64(pointCount)/10.0, 1.0)
	switch calcType {
	case constants.CalcDerived:
		c *= 0.9
	case constants.CalcRatio:
		c *= 0.85
	}
	if c < 0.1 {
		c = 0.1
	}
	return c
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
