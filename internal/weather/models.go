package weather

// Units selects the display unit system for a whole request.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Valid reports whether u is one of the two supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Coordinates is a geographic point. Latitude must be within [-90, 90]
// and longitude within [-180, 180].
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates are within range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Location is a resolved place. Name/Country/State may be empty when only
// coordinates are known (degraded reverse-geocoding result).
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country,omitempty"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Current is the snapshot of present conditions. Temperatures and wind
// speed are rounded display values in the view's unit system.
type Current struct {
	Time        int64   `json:"time"` // unix seconds
	Sunrise     int64   `json:"sunrise,omitempty"`
	Sunset      int64   `json:"sunset,omitempty"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feelsLike"`
	TempMin     int     `json:"tempMin,omitempty"`
	TempMax     int     `json:"tempMax,omitempty"`
	Pressure    int     `json:"pressure"`
	Humidity    int     `json:"humidity"`
	Clouds      int     `json:"clouds"`
	Visibility  int     `json:"visibility"`
	UVIndex     float64 `json:"uvIndex,omitempty"`
	WindSpeed   int     `json:"windSpeed"`
	WindDeg     int     `json:"windDeg"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
}

// HourlyEntry is one step of the hourly sequence. On the legacy ingestion
// path the resolution is 3 hours standing in for hourly.
type HourlyEntry struct {
	Time        int64   `json:"time"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   int     `json:"windSpeed"`
	PrecipProb  float64 `json:"precipProb"` // 0..1
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
}

// DailySummary is one day of the daily sequence. Min/max/avg are computed
// over unrounded samples and rounded once for display.
type DailySummary struct {
	Date        string  `json:"date"` // provider-local calendar date, YYYY-MM-DD
	Time        int64   `json:"time"`
	MinTemp     int     `json:"minTemp"`
	MaxTemp     int     `json:"maxTemp"`
	AvgTemp     int     `json:"avgTemp"`
	WindSpeed   int     `json:"windSpeed"`
	PrecipProb  float64 `json:"precipProb"`
	Summary     string  `json:"summary,omitempty"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
}

// Alert is a government weather alert from the one-call feed.
type Alert struct {
	SenderName  string   `json:"senderName"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// View is the unified weather view consumed by the dashboard. It is the
// only structure the presentation layer reads, and it is replaced wholesale
// on each new search.
type View struct {
	Location Location       `json:"location"`
	Units    Units          `json:"units"`
	Current  Current        `json:"current"`
	Hourly   []HourlyEntry  `json:"hourly"`
	Daily    []DailySummary `json:"daily"`
	Alerts   []Alert        `json:"alerts"`
}

// ViewOptions bounds the sequences a caller wants to display.
type ViewOptions struct {
	// Hours caps the hourly sequence; <= 0 means no cap.
	Hours int
	// Days caps the daily sequence; <= 0 means no cap.
	Days int
	// Exclude names one-call sections to omit upstream (e.g. "minutely").
	Exclude []string
}
