package calc

import (
	"fmt"
	"strings"
	"time"

	"github.com/kofiasare/hotelmetrics/internal/common"
)

// Period is the time-bucket granularity for a calculation run.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ParsePeriod normalizes a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodQuarterly:
		return PeriodQuarterly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	}
	return "", common.InvalidInputErrorf("unknown period %q", s)
}

// TimeBucket is one contiguous calendar-aligned interval. End is exclusive:
// points are grouped by [Start, End).
type TimeBucket struct {
	Start time.Time
	End   time.Time
	Label string
}

// BuildBuckets divides [start, end] (both at day granularity, end inclusive)
// into contiguous, non-overlapping buckets. Weekly and coarser buckets follow
// calendar boundaries, so the first and last bucket may be partial when the
// range does not start or end on a boundary.
func BuildBuckets(start, end time.Time, period Period) []TimeBucket {
	start = dayOf(start)
	rangeEnd := dayOf(end).AddDate(0, 0, 1) // exclusive upper bound

	var buckets []TimeBucket
	cur := start
	for cur.Before(rangeEnd) {
		next := nextBoundary(cur, period)
		if next.After(rangeEnd) {
			next = rangeEnd
		}
		buckets = append(buckets, TimeBucket{
			Start: cur,
			End:   next,
			Label: bucketLabel(cur, period),
		})
		cur = next
	}
	return buckets
}

// Contains reports whether t falls in [Start, End).
func (b TimeBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// nextBoundary returns the start of the calendar interval following cur.
func nextBoundary(cur time.Time, period Period) time.Time {
	switch period {
	case PeriodWeekly:
		// calendar weeks start on Monday
		days := (8 - int(cur.Weekday())) % 7
		if days == 0 {
			days = 7
		}
		return cur.AddDate(0, 0, days)
	case PeriodMonthly:
		return time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	case PeriodQuarterly:
		qStartMonth := time.Month(((int(cur.Month())-1)/3)*3 + 1)
		return time.Date(cur.Year(), qStartMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 3, 0)
	case PeriodYearly:
		return time.Date(cur.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	default: // daily
		return cur.AddDate(0, 0, 1)
	}
}

func bucketLabel(start time.Time, period Period) string {
	switch period {
	case PeriodWeekly:
		return "Week of " + start.Format("2006-01-02")
	case PeriodMonthly:
		return start.Format("January 2006")
	case PeriodQuarterly:
		return fmt.Sprintf("Q%d %d", (int(start.Month())-1)/3+1, start.Year())
	case PeriodYearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
