package openweather

import (
	"sort"
	"time"
)

// dailyBucket groups forecast entries sharing one provider-local calendar
// date. Buckets are built fresh per aggregation call and never mutated
// after construction.
type dailyBucket struct {
	date    string // YYYY-MM-DD in provider-local time
	entries []ForecastEntry
}

// bucketByLocalDate groups 3-hour forecast entries by their local calendar
// date. Day boundaries are local-time boundaries: the entry timestamp is
// shifted by the provider's timezone offset before truncating to a date,
// never divided as a raw epoch value. Buckets come back ordered by
// ascending date with every input entry placed in exactly one bucket.
func bucketByLocalDate(list []ForecastEntry, tzOffsetSeconds int) []dailyBucket {
	tz := time.FixedZone("provider-local", tzOffsetSeconds)

	byDate := make(map[string][]ForecastEntry)
	for _, e := range list {
		key := time.Unix(e.Dt, 0).In(tz).Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]dailyBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, dailyBucket{date: k, entries: byDate[k]})
	}
	return buckets
}

// daySummary holds a bucket's aggregates before unit conversion and
// rounding. Values stay unrounded here; rounding happens exactly once, at
// the display boundary.
type daySummary struct {
	date        string
	time        int64
	minTemp     float64
	maxTemp     float64
	avgTemp     float64
	windSpeed   float64
	precipProb  float64
	icon        string
	description string
}

// summarize aggregates one bucket. Min/max are the true extremes across
// all entries and avg is the arithmetic mean, all computed on unrounded
// inputs. The representative icon and description come from the entry at
// exactly local noon, or the first chronological entry when no entry lands
// on noon.
func summarize(b dailyBucket, tzOffsetSeconds int) daySummary {
	tz := time.FixedZone("provider-local", tzOffsetSeconds)

	rep := b.entries[0]
	var (
		sumTemp float64
		sumWind float64
		maxPop  float64
	)
	minTemp := b.entries[0].Main.Temp
	maxTemp := b.entries[0].Main.Temp

	for _, e := range b.entries {
		t := e.Main.Temp
		if t < minTemp {
			minTemp = t
		}
		if t > maxTemp {
			maxTemp = t
		}
		sumTemp += t
		sumWind += e.Wind.Speed
		if e.Pop > maxPop {
			maxPop = e.Pop
		}

		local := time.Unix(e.Dt, 0).In(tz)
		if local.Hour() == 12 && local.Minute() == 0 {
			rep = e
		}
	}

	n := float64(len(b.entries))
	s := daySummary{
		date:       b.date,
		time:       b.entries[0].Dt,
		minTemp:    minTemp,
		maxTemp:    maxTemp,
		avgTemp:    sumTemp / n,
		windSpeed:  sumWind / n,
		precipProb: maxPop,
	}
	if len(rep.Weather) > 0 {
		s.icon = rep.Weather[0].Icon
		s.description = rep.Weather[0].Description
	}
	return s
}
