package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// Secondary, low-confidence patterns run over generic table rows when no
// labeled metric matched. Each first capture group is the numeric value.
var tableRowPatterns = []struct {
	re   *regexp.Regexp
	kind string
}{
	{regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*%`), "percentage"},
	{regexp.MustCompile(`(?:GHS|₵|\$)\s*([\d,]+(?:\.\d+)?)`), "currency"},
	{regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:days?|h(?:ou)?rs?|min(?:ute)?s?)\b`), "duration"},
}

// ExtractTableRows scans tabular rows for numeric tokens. Row 0 of each table
// is treated as the header and skipped. Every match produces an unresolved
// "table_metric" point tagged with its table/row coordinates and the full row
// text for audit. This extractor is strictly additive: it never overrides
// labeled-metric extraction, it only adds lower-confidence material.
func ExtractTableRows(tables [][][]string, department constants.Department, dates []time.Time, sourceFile string) []entity.RawDataPoint {
	var points []entity.RawDataPoint

	for ti, table := range tables {
		for ri, row := range table {
			if ri == 0 {
				continue // header row
			}
			joined := strings.TrimSpace(strings.Join(row, " "))
			if joined == "" {
				continue
			}

			for _, p := range tableRowPatterns {
				for _, m := range p.re.FindAllStringSubmatch(joined, -1) {
					value, ok := parseNumber(m[1])
					if !ok {
						continue
					}
					for _, date := range dates {
						v := value
						text := joined
						points = append(points, entity.RawDataPoint{
							ID:         uuid.New(),
							Department: department,
							DataType:   "table_metric",
							Value:      &v,
							TextValue:  &text,
							Date:       date,
							Source:     constants.SourcePDFTable,
							SourceFile: sourceFile,
							Metadata: map[string]string{
								"kind":  p.kind,
								"match": strings.TrimSpace(m[0]),
								"table": fmt.Sprintf("%d", ti),
								"row":   fmt.Sprintf("%d", ri),
							},
							CreatedAt: time.Now().UTC(),
						})
					}
				}
			}
		}
	}

	return points
}
