package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Year bounds for extracted dates. Anything outside is treated as extraction
// noise (phone numbers, invoice IDs), not a real reporting date.
const (
	minDateYear = 2000 // exclusive
	maxDateYear = 2030 // exclusive
)

type datePattern struct {
	re    *regexp.Regexp
	parse func(m []string) (year, month, day int, ok bool)
}

var monthsByName = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

var datePatterns = []datePattern{
	{
		// MM/DD/YYYY
		re: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		parse: func(m []string) (int, int, int, bool) {
			return atoi(m[3]), atoi(m[1]), atoi(m[2]), true
		},
	},
	{
		// YYYY-MM-DD
		re: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		parse: func(m []string) (int, int, int, bool) {
			return atoi(m[1]), atoi(m[2]), atoi(m[3]), true
		},
	},
	{
		// MM-DD-YYYY
		re: regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`),
		parse: func(m []string) (int, int, int, bool) {
			return atoi(m[3]), atoi(m[1]), atoi(m[2]), true
		},
	},
	{
		// Month DD, YYYY
		re: regexp.MustCompile(`(?i)\b([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		parse: func(m []string) (int, int, int, bool) {
			month, ok := monthsByName[strings.ToLower(m[1])]
			return atoi(m[3]), month, atoi(m[2]), ok
		},
	},
	{
		// DD Month YYYY
		re: regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\.?\s+(\d{4})\b`),
		parse: func(m []string) (int, int, int, bool) {
			month, ok := monthsByName[strings.ToLower(m[2])]
			return atoi(m[3]), month, atoi(m[1]), ok
		},
	},
}

// ExtractDates scans raw text for date-like substrings and returns the
// deduplicated, ascending set of valid calendar dates (day granularity, UTC).
// When no valid date survives, it returns a single-element list holding "now"
// truncated to the day, so downstream extraction always has a date to attach
// values to. Pure given identical text and now.
func ExtractDates(text string, now time.Time) []time.Time {
	seen := make(map[time.Time]struct{})

	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			year, month, day, ok := p.parse(m)
			if !ok {
				continue
			}
			d, ok := buildDate(year, month, day)
			if !ok {
				continue
			}
			seen[d] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return []time.Time{time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	}

	out := make([]time.Time, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// buildDate validates the year bound and that the components name a real
// calendar day (time.Date normalizes, so a normalized mismatch means the
// input was bogus, e.g. Feb 30).
func buildDate(year, month, day int) (time.Time, bool) {
	if year <= minDateYear || year >= maxDateYear {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
