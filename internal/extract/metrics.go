package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// ExtractMetrics applies one department's rules to its section text and emits
// a RawDataPoint per (match × document date). A metric found once in a
// single-date document produces one point; when the document carries several
// dates the matched value is broadcast across all of them, since the labeled
// extractor does not associate a match with a specific nearby date token.
//
// Unmatched rules produce no points and no error: absence of a metric in a
// given document is expected.
func ExtractMetrics(section Section, rules []MetricRule, dates []time.Time, source constants.Source, sourceFile string) []entity.RawDataPoint {
	var points []entity.RawDataPoint

	for _, rule := range rules {
		for _, m := range rule.re.FindAllStringSubmatch(section.Text, -1) {
			value, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			for _, date := range dates {
				v := value
				matched := strings.TrimSpace(m[0])
				points = append(points, entity.RawDataPoint{
					ID:         uuid.New(),
					Department: section.Department,
					DataType:   rule.DataType,
					Value:      &v,
					TextValue:  &matched,
					Date:       date,
					Source:     source,
					SourceFile: sourceFile,
					Metadata: map[string]string{
						"unit":  rule.Unit,
						"match": matched,
					},
					CreatedAt: time.Now().UTC(),
				})
			}
		}
	}

	return points
}

// parseNumber strips thousands separators and parses a float. NaN and
// non-finite results are rejected rather than emitted.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
