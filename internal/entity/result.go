package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
)

// KpiCalculationResult is one computed KPI value for a single time bucket.
// Results are ephemeral per request and persisted as a parallel item type
// (source "calculated") when the caller asks for it.
type KpiCalculationResult struct {
	KPIName    string            `json:"kpi_name"`
	Value      float64           `json:"value"`
	Unit       string            `json:"unit"`
	Date       time.Time         `json:"date"`
	Period     string            `json:"period"`
	Confidence float64           `json:"confidence"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ToDataPoint converts a computed result into a persistable item with source
// "calculated". The catalog display name is used when the engine supplied
// one, so calculated items carry canonical names like extracted ones.
// sourceFile scopes the idempotency key; re-storing the same calculation is
// swallowed at insert time.
func (r KpiCalculationResult) ToDataPoint(department constants.Department, sourceFile string) RawDataPoint {
	name := r.KPIName
	if dn := r.Metadata["display_name"]; dn != "" {
		name = dn
	}

	v := r.Value
	md := map[string]string{
		"unit":       r.Unit,
		"period":     r.Period,
		"confidence": fmt.Sprintf("%.2f", r.Confidence),
	}
	for k, val := range r.Metadata {
		md[k] = val
	}

	return RawDataPoint{
		ID:         uuid.New(),
		Department: department,
		DataType:   name,
		Value:      &v,
		Date:       r.Date,
		Source:     constants.SourceCalculated,
		SourceFile: sourceFile,
		Metadata:   md,
		CreatedAt:  time.Now().UTC(),
	}
}
