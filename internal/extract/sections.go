package extract

import (
	"sort"
	"strings"

	"github.com/kofiasare/hotelmetrics/constants"
)

// Section is one department's slice of the raw document text.
type Section struct {
	Department constants.Department
	Start      int
	Text       string
}

// Segment carves raw text into per-department sections. A department's
// section starts at the earliest occurrence of any of its header patterns
// (first match wins) and ends at the nearest following occurrence of any
// other department's header, or end-of-text. Departments whose headers never
// occur are simply absent — that is the normal case, not an error. Sections
// cannot overlap by construction.
//
// Results are ordered by start index, matching header occurrence order.
func Segment(text string, departments []DepartmentRules) []Section {
	lower := strings.ToLower(text)

	starts := make(map[constants.Department]int, len(departments))
	for _, d := range departments {
		best := -1
		for _, h := range d.Headers {
			idx := strings.Index(lower, strings.ToLower(h))
			if idx >= 0 && (best == -1 || idx < best) {
				best = idx
			}
		}
		if best >= 0 {
			starts[d.Department] = best
		}
	}

	var sections []Section
	for _, d := range departments {
		start, ok := starts[d.Department]
		if !ok {
			continue
		}

		end := len(text)
		for _, other := range departments {
			if other.Department == d.Department {
				continue
			}
			for _, h := range other.Headers {
				idx := indexFrom(lower, strings.ToLower(h), start+1)
				if idx >= 0 && idx < end {
					end = idx
				}
			}
		}

		sections = append(sections, Section{
			Department: d.Department,
			Start:      start,
			Text:       text[start:end],
		})
	}

	sort.Slice(sections, func(i, j int) bool { return sections[i].Start < sections[j].Start })
	return sections
}

// indexFrom is strings.Index with a starting offset, returning an absolute index.
func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx < 0 {
		return -1
	}
	return idx + from
}
