package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
)

// RawDataPoint represents one extracted observation for data transfer between layers.
// Points are immutable after creation; corrections are modeled as new,
// later-dated entries, never updates.
type RawDataPoint struct {
	ID         uuid.UUID            `json:"id"`
	Department constants.Department `json:"department"`
	DataType   string               `json:"data_type"`
	Value      *float64             `json:"value,omitempty"`
	TextValue  *string              `json:"text_value,omitempty"`
	Date       time.Time            `json:"date"`
	Source     constants.Source     `json:"source"`
	SourceFile string               `json:"source_file"`
	Metadata   map[string]string    `json:"metadata,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Day returns the point's date truncated to calendar-day granularity (UTC).
func (p RawDataPoint) Day() time.Time {
	return time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// StoredItem is the read-side projection of a persisted data point, as
// returned by the item store.
type StoredItem struct {
	ID         uuid.UUID            `json:"id"`
	Department constants.Department `json:"department"`
	KPIName    string               `json:"kpi_name"`
	Value      *float64             `json:"value,omitempty"`
	TextValue  *string              `json:"text_value,omitempty"`
	Unit       string               `json:"unit"`
	Date       time.Time            `json:"date"`
	Source     constants.Source     `json:"source"`
	SourceFile string               `json:"source_file"`
	CreatedAt  time.Time            `json:"created_at"`
}

// ToDataPoint converts a stored item back to the point shape the calculation
// engine consumes. The stored KPI name becomes the point's data type.
func (it StoredItem) ToDataPoint() RawDataPoint {
	return RawDataPoint{
		ID:         it.ID,
		Department: it.Department,
		DataType:   it.KPIName,
		Value:      it.Value,
		TextValue:  it.TextValue,
		Date:       it.Date,
		Source:     it.Source,
		SourceFile: it.SourceFile,
		CreatedAt:  it.CreatedAt,
	}
}
