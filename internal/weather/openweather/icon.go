package openweather

import (
	"fmt"
	"time"
)

const iconBaseURL = "https://openweathermap.org/img/wn"

// IconURL builds the asset URL for a weather icon code. Size is the
// resolution multiplier; only 2 and 4 are published, anything else falls
// back to 2. No network validation is performed.
func IconURL(code string, size int) string {
	if size != 2 && size != 4 {
		size = 2
	}
	return fmt.Sprintf("%s/%s@%dx.png", iconBaseURL, code, size)
}

// DayNightSuffix returns the icon suffix ("d" or "n") for a timestamp,
// treating 06:00-18:00 as daytime.
func DayNightSuffix(ts int64, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	h := time.Unix(ts, 0).In(tz).Hour()
	if h >= 6 && h < 18 {
		return "d"
	}
	return "n"
}
