package openweather

import (
	"testing"
	"time"
)

func entryAt(dt int64, temp float64, icon, desc string) ForecastEntry {
	var e ForecastEntry
	e.Dt = dt
	e.Main.Temp = temp
	e.Weather = []Condition{{Icon: icon, Description: desc}}
	return e
}

// TestBucketByLocalDatePartition verifies that every entry lands in exactly
// one bucket, buckets share a single date, and ordering is ascending.
func TestBucketByLocalDatePartition(t *testing.T) {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Unix()

	var list []ForecastEntry
	for i := 0; i < 16; i++ { // 2 full days at 3-hour resolution
		list = append(list, entryAt(base+int64(i)*3*3600, 10, "01d", "clear sky"))
	}

	buckets := bucketByLocalDate(list, 0)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	total := 0
	prevDate := ""
	for _, b := range buckets {
		if b.date <= prevDate {
			t.Fatalf("buckets not in ascending date order: %q after %q", b.date, prevDate)
		}
		prevDate = b.date

		tz := time.UTC
		for _, e := range b.entries {
			if got := time.Unix(e.Dt, 0).In(tz).Format("2006-01-02"); got != b.date {
				t.Fatalf("entry date %s in bucket %s", got, b.date)
			}
		}
		total += len(b.entries)
	}
	if total != len(list) {
		t.Fatalf("buckets hold %d entries, input had %d", total, len(list))
	}
}

// TestBucketByLocalDateUsesLocalBoundaries verifies that the calendar-day
// boundary follows the provider's timezone offset, not UTC.
func TestBucketByLocalDateUsesLocalBoundaries(t *testing.T) {
	// 23:00 UTC on March 10th is 01:00 March 11th at UTC+2.
	dt := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC).Unix()
	list := []ForecastEntry{entryAt(dt, 5, "01n", "clear sky")}

	buckets := bucketByLocalDate(list, 2*3600)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].date != "2024-03-11" {
		t.Fatalf("expected local date 2024-03-11, got %s", buckets[0].date)
	}
}

// TestSummarizeAveragesBeforeRounding checks that the mean is computed on
// unrounded inputs and rounded once: [10.4, 10.6] averages to 10.5, which
// rounds half-up to 11 (not round-then-average).
func TestSummarizeAveragesBeforeRounding(t *testing.T) {
	base := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC).Unix()
	b := dailyBucket{
		date: "2024-03-10",
		entries: []ForecastEntry{
			entryAt(base, 10.4, "01d", "clear sky"),
			entryAt(base+3*3600, 10.6, "01d", "clear sky"),
		},
	}

	s := summarize(b, 0)
	if s.avgTemp != 10.5 {
		t.Fatalf("expected unrounded avg 10.5, got %f", s.avgTemp)
	}
	if got := round(s.avgTemp); got != 11 {
		t.Fatalf("expected display avg 11, got %d", got)
	}
	if s.minTemp != 10.4 || s.maxTemp != 10.6 {
		t.Fatalf("unexpected min/max: %f/%f", s.minTemp, s.maxTemp)
	}
}

// TestSummarizeRepresentativeEntry checks noon selection: the exact-noon
// entry wins, and without one the first chronological entry is used.
func TestSummarizeRepresentativeEntry(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	withNoon := dailyBucket{date: "2024-03-10"}
	for _, h := range []int{0, 6, 12, 18} {
		icon := "02d"
		if h == 12 {
			icon = "10d"
		}
		withNoon.entries = append(withNoon.entries,
			entryAt(day.Add(time.Duration(h)*time.Hour).Unix(), 10, icon, icon))
	}
	if s := summarize(withNoon, 0); s.icon != "10d" {
		t.Fatalf("expected noon icon 10d, got %s", s.icon)
	}

	noNoon := dailyBucket{date: "2024-03-10"}
	for _, h := range []int{3, 9, 15, 21} {
		icon := "02d"
		if h == 3 {
			icon = "13d"
		}
		noNoon.entries = append(noNoon.entries,
			entryAt(day.Add(time.Duration(h)*time.Hour).Unix(), 10, icon, icon))
	}
	if s := summarize(noNoon, 0); s.icon != "13d" {
		t.Fatalf("expected first entry icon 13d, got %s", s.icon)
	}
}
