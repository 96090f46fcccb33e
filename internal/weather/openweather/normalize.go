package openweather

import (
	"fmt"
	"math"
	"time"

	"github.com/weatherly/weatherly/internal/weather"
)

// Normalization of the two upstream payload shapes into the unified view.
//
// Unit responsibility is fixed here, once per request: the legacy
// endpoints are always queried in metric and this engine converts when the
// caller asked for imperial; the one-call endpoint receives the unit
// system upstream and its values are mapped without re-conversion.

const mphPerMS = 2.237

// round rounds half up (half toward +Inf) at the display boundary, so
// -10.5 becomes -10. Aggregates are computed on unrounded values first.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func displayTemp(celsius float64, units weather.Units) int {
	if units == weather.UnitsImperial {
		return round(celsius*9/5 + 32)
	}
	return round(celsius)
}

func displayWind(metersPerSecond float64, units weather.Units) int {
	if units == weather.UnitsImperial {
		return round(metersPerSecond * mphPerMS)
	}
	return round(metersPerSecond)
}

// NormalizeLegacy converts the legacy current + forecast payload pair into
// a unified view, bucketing the 3-hour forecast into daily summaries.
func NormalizeLegacy(cur *CurrentResponse, fc *ForecastResponse, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	if len(cur.Weather) == 0 {
		return nil, fmt.Errorf("%w: current payload has empty weather array", weather.ErrMalformedData)
	}
	if len(fc.List) == 0 {
		return nil, fmt.Errorf("%w: forecast payload has empty list", weather.ErrMalformedData)
	}
	for i, e := range fc.List {
		if len(e.Weather) == 0 {
			return nil, fmt.Errorf("%w: forecast list entry %d has empty weather array", weather.ErrMalformedData, i)
		}
	}

	cond := cur.Weather[0]
	view := &weather.View{
		Location: weather.Location{
			Name:    cur.Name,
			Country: cur.Sys.Country,
			Lat:     cur.Coord.Lat,
			Lon:     cur.Coord.Lon,
		},
		Units: units,
		Current: weather.Current{
			Time:        cur.Dt,
			Sunrise:     cur.Sys.Sunrise,
			Sunset:      cur.Sys.Sunset,
			Temp:        displayTemp(cur.Main.Temp, units),
			FeelsLike:   displayTemp(cur.Main.FeelsLike, units),
			TempMin:     displayTemp(cur.Main.TempMin, units),
			TempMax:     displayTemp(cur.Main.TempMax, units),
			Pressure:    cur.Main.Pressure,
			Humidity:    cur.Main.Humidity,
			Clouds:      cur.Clouds.All,
			Visibility:  cur.Visibility,
			WindSpeed:   displayWind(cur.Wind.Speed, units),
			WindDeg:     cur.Wind.Deg,
			Condition:   cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
			IconURL:     IconURL(cond.Icon, 2),
		},
		Alerts: []weather.Alert{}, // the legacy shape carries no alert data
	}

	// The 3-hour list stands in for the hourly sequence. This is a
	// deliberate approximation; entries are exposed as-is, not smoothed.
	hourly := fc.List
	if opts.Hours > 0 && len(hourly) > opts.Hours {
		hourly = hourly[:opts.Hours]
	}
	view.Hourly = make([]weather.HourlyEntry, 0, len(hourly))
	for _, e := range hourly {
		c := e.Weather[0]
		view.Hourly = append(view.Hourly, weather.HourlyEntry{
			Time:        e.Dt,
			Temp:        displayTemp(e.Main.Temp, units),
			FeelsLike:   displayTemp(e.Main.FeelsLike, units),
			Humidity:    e.Main.Humidity,
			WindSpeed:   displayWind(e.Wind.Speed, units),
			PrecipProb:  e.Pop,
			Description: c.Description,
			Icon:        c.Icon,
			IconURL:     IconURL(c.Icon, 2),
		})
	}

	buckets := bucketByLocalDate(fc.List, fc.City.Timezone)
	if opts.Days > 0 && len(buckets) > opts.Days {
		buckets = buckets[:opts.Days]
	}
	view.Daily = make([]weather.DailySummary, 0, len(buckets))
	for _, b := range buckets {
		s := summarize(b, fc.City.Timezone)
		view.Daily = append(view.Daily, weather.DailySummary{
			Date:        s.date,
			Time:        s.time,
			MinTemp:     displayTemp(s.minTemp, units),
			MaxTemp:     displayTemp(s.maxTemp, units),
			AvgTemp:     displayTemp(s.avgTemp, units),
			WindSpeed:   displayWind(s.windSpeed, units),
			PrecipProb:  s.precipProb,
			Description: s.description,
			Icon:        s.icon,
			IconURL:     IconURL(s.icon, 2),
		})
	}

	return view, nil
}

// NormalizeOneCall converts a one-call payload into a unified view. The
// provider already delivered values in the requested unit system, so every
// numeric field is mapped and rounded without conversion.
func NormalizeOneCall(p *OneCallResponse, units weather.Units, opts weather.ViewOptions) (*weather.View, error) {
	if len(p.Current.Weather) == 0 {
		return nil, fmt.Errorf("%w: one-call current block has empty weather array", weather.ErrMalformedData)
	}

	tz := time.FixedZone(p.Timezone, p.TimezoneOffset)
	cond := p.Current.Weather[0]

	view := &weather.View{
		Location: weather.Location{Lat: p.Lat, Lon: p.Lon},
		Units:    units,
		Current: weather.Current{
			Time:        p.Current.Dt,
			Sunrise:     p.Current.Sunrise,
			Sunset:      p.Current.Sunset,
			Temp:        round(p.Current.Temp),
			FeelsLike:   round(p.Current.FeelsLike),
			Pressure:    p.Current.Pressure,
			Humidity:    p.Current.Humidity,
			Clouds:      p.Current.Clouds,
			Visibility:  p.Current.Visibility,
			UVIndex:     p.Current.UVI,
			WindSpeed:   round(p.Current.WindSpeed),
			WindDeg:     p.Current.WindDeg,
			Condition:   cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
			IconURL:     IconURL(cond.Icon, 2),
		},
	}

	hourly := p.Hourly
	if opts.Hours > 0 && len(hourly) > opts.Hours {
		hourly = hourly[:opts.Hours]
	}
	view.Hourly = make([]weather.HourlyEntry, 0, len(hourly))
	for i, h := range hourly {
		if len(h.Weather) == 0 {
			return nil, fmt.Errorf("%w: one-call hourly entry %d has empty weather array", weather.ErrMalformedData, i)
		}
		c := h.Weather[0]
		view.Hourly = append(view.Hourly, weather.HourlyEntry{
			Time:        h.Dt,
			Temp:        round(h.Temp),
			FeelsLike:   round(h.FeelsLike),
			Humidity:    h.Humidity,
			WindSpeed:   round(h.WindSpeed),
			PrecipProb:  h.Pop,
			Description: c.Description,
			Icon:        c.Icon,
			IconURL:     IconURL(c.Icon, 2),
		})
	}

	daily := p.Daily
	if opts.Days > 0 && len(daily) > opts.Days {
		daily = daily[:opts.Days]
	}
	view.Daily = make([]weather.DailySummary, 0, len(daily))
	for i, d := range daily {
		if len(d.Weather) == 0 {
			return nil, fmt.Errorf("%w: one-call daily entry %d has empty weather array", weather.ErrMalformedData, i)
		}
		c := d.Weather[0]
		view.Daily = append(view.Daily, weather.DailySummary{
			Date:        time.Unix(d.Dt, 0).In(tz).Format("2006-01-02"),
			Time:        d.Dt,
			MinTemp:     round(d.Temp.Min),
			MaxTemp:     round(d.Temp.Max),
			AvgTemp:     round(d.Temp.Day),
			WindSpeed:   round(d.WindSpeed),
			PrecipProb:  d.Pop,
			Summary:     d.Summary,
			Description: c.Description,
			Icon:        c.Icon,
			IconURL:     IconURL(c.Icon, 2),
		})
	}

	// Alerts are always a concrete list, never null.
	view.Alerts = make([]weather.Alert, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		view.Alerts = append(view.Alerts, weather.Alert{
			SenderName:  a.SenderName,
			Event:       a.Event,
			Start:       a.Start,
			End:         a.End,
			Description: a.Description,
			Tags:        tags,
		})
	}

	return view, nil
}
