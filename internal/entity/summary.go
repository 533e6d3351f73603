package entity

import (
	"time"

	"github.com/kofiasare/hotelmetrics/constants"
)

// ProcessingSummary reports what one extraction run produced, before and
// after the deduplication gate.
type ProcessingSummary struct {
	SourceFile     string              `json:"source_file"`
	Status         constants.RunStatus `json:"status"`
	TotalExtracted int                 `json:"total_extracted"`
	Stored         int                 `json:"stored"`
	Duplicates     int                 `json:"duplicates"`
	PerCategory    map[string]int      `json:"per_category"`
	Dates          []time.Time         `json:"dates"`
}
