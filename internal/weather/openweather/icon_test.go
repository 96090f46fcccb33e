package openweather

import (
	"testing"
	"time"
)

func TestIconURL(t *testing.T) {
	if got := IconURL("10d", 2); got != "https://openweathermap.org/img/wn/10d@2x.png" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := IconURL("01n", 4); got != "https://openweathermap.org/img/wn/01n@4x.png" {
		t.Fatalf("unexpected url: %s", got)
	}
	// Unsupported sizes fall back to 2x.
	if got := IconURL("01n", 3); got != "https://openweathermap.org/img/wn/01n@2x.png" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestDayNightSuffix(t *testing.T) {
	noon := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix()
	if got := DayNightSuffix(noon, time.UTC); got != "d" {
		t.Fatalf("expected d, got %s", got)
	}
	midnight := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Unix()
	if got := DayNightSuffix(midnight, time.UTC); got != "n" {
		t.Fatalf("expected n, got %s", got)
	}
	// 17:00 UTC is 19:00 at UTC+2, past daylight.
	evening := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC).Unix()
	if got := DayNightSuffix(evening, time.FixedZone("", 2*3600)); got != "n" {
		t.Fatalf("expected n, got %s", got)
	}
}
