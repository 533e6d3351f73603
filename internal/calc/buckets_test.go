package calc

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"daily", "WEEKLY", " monthly ", "Quarterly", "yearly"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParsePeriod("fortnightly"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestBuildBuckets_Daily(t *testing.T) {
	buckets := BuildBuckets(day(2025, time.March, 1), day(2025, time.March, 3), PeriodDaily)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3 (end date inclusive)", len(buckets))
	}
	for i, b := range buckets {
		want := day(2025, time.March, 1+i)
		if !b.Start.Equal(want) {
			t.Errorf("bucket %d start = %v, want %v", i, b.Start, want)
		}
		if !b.End.Equal(want.AddDate(0, 0, 1)) {
			t.Errorf("bucket %d end = %v, want next day", i, b.End)
		}
		if b.Label != want.Format("2006-01-02") {
			t.Errorf("bucket %d label = %q", i, b.Label)
		}
	}
}

func TestBuildBuckets_WeeklyMondayAligned(t *testing.T) {
	// 2025-03-05 is a Wednesday; the first bucket is partial up to Monday
	// 2025-03-10, then full weeks follow.
	buckets := BuildBuckets(day(2025, time.March, 5), day(2025, time.March, 20), PeriodWeekly)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	if !buckets[0].End.Equal(day(2025, time.March, 10)) {
		t.Errorf("first bucket end = %v, want Monday 2025-03-10", buckets[0].End)
	}
	if !buckets[1].Start.Equal(day(2025, time.March, 10)) || !buckets[1].End.Equal(day(2025, time.March, 17)) {
		t.Errorf("second bucket = [%v, %v), want full Monday week", buckets[1].Start, buckets[1].End)
	}
	if !buckets[2].End.Equal(day(2025, time.March, 21)) {
		t.Errorf("last bucket end = %v, want range end + 1 day", buckets[2].End)
	}
}

func TestBuildBuckets_WeeklyStartOnMonday(t *testing.T) {
	// A Monday start must begin a full week, not a zero-length bucket.
	buckets := BuildBuckets(day(2025, time.March, 10), day(2025, time.March, 16), PeriodWeekly)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if !buckets[0].End.Equal(day(2025, time.March, 17)) {
		t.Errorf("end = %v, want next Monday", buckets[0].End)
	}
}

func TestBuildBuckets_MonthlyCalendarAligned(t *testing.T) {
	buckets := BuildBuckets(day(2025, time.January, 15), day(2025, time.March, 10), PeriodMonthly)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	if !buckets[0].End.Equal(day(2025, time.February, 1)) {
		t.Errorf("first bucket end = %v, want Feb 1 (partial month)", buckets[0].End)
	}
	if buckets[1].Label != "February 2025" {
		t.Errorf("second label = %q", buckets[1].Label)
	}
	if !buckets[2].End.Equal(day(2025, time.March, 11)) {
		t.Errorf("last bucket end = %v, want range end + 1 day", buckets[2].End)
	}
}

func TestBuildBuckets_QuarterlyLabels(t *testing.T) {
	buckets := BuildBuckets(day(2025, time.February, 1), day(2025, time.July, 31), PeriodQuarterly)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	wantLabels := []string{"Q1 2025", "Q2 2025", "Q3 2025"}
	for i, b := range buckets {
		if b.Label != wantLabels[i] {
			t.Errorf("bucket %d label = %q, want %q", i, b.Label, wantLabels[i])
		}
	}
}

func TestBuildBuckets_ContiguousNonOverlapping(t *testing.T) {
	for _, period := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly} {
		buckets := BuildBuckets(day(2024, time.November, 20), day(2025, time.April, 3), period)
		if len(buckets) == 0 {
			t.Fatalf("%s: no buckets", period)
		}
		for i := 1; i < len(buckets); i++ {
			if !buckets[i-1].End.Equal(buckets[i].Start) {
				t.Errorf("%s: gap between bucket %d and %d: %v != %v",
					period, i-1, i, buckets[i-1].End, buckets[i].Start)
			}
		}
		last := buckets[len(buckets)-1]
		if !last.End.Equal(day(2025, time.April, 4)) {
			t.Errorf("%s: last end = %v, want range end + 1 day", period, last.End)
		}
	}
}

func TestTimeBucket_ContainsHalfOpen(t *testing.T) {
	b := TimeBucket{Start: day(2025, time.March, 1), End: day(2025, time.March, 8)}
	if !b.Contains(day(2025, time.March, 1)) {
		t.Error("start must be contained")
	}
	if b.Contains(day(2025, time.March, 8)) {
		t.Error("end must be excluded")
	}
	if !b.Contains(day(2025, time.March, 7)) {
		t.Error("last interior day must be contained")
	}
}
