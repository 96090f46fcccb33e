package openweather

// Raw payload shapes for the three OpenWeather endpoint families. These are
// owned by the client/normalization boundary and discarded once a view has
// been produced.

// Condition is the weather[] element shared by every payload shape.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentResponse is the legacy /data/2.5/weather payload.
type CurrentResponse struct {
	Name  string `json:"name"`
	Dt    int64  `json:"dt"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int `json:"visibility"`
	Timezone   int `json:"timezone"`
}

// ForecastEntry is one 3-hour sample of the legacy forecast list.
type ForecastEntry struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Pop float64 `json:"pop"`
}

// ForecastResponse is the legacy /data/2.5/forecast payload: up to 40
// entries at 3-hour resolution covering roughly 5 days.
type ForecastResponse struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"` // seconds east of UTC
	} `json:"city"`
}

// OneCallCurrent is the current block of the one-call payload.
type OneCallCurrent struct {
	Dt         int64       `json:"dt"`
	Sunrise    int64       `json:"sunrise"`
	Sunset     int64       `json:"sunset"`
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Pressure   int         `json:"pressure"`
	Humidity   int         `json:"humidity"`
	DewPoint   float64     `json:"dew_point"`
	UVI        float64     `json:"uvi"`
	Clouds     int         `json:"clouds"`
	Visibility int         `json:"visibility"`
	WindSpeed  float64     `json:"wind_speed"`
	WindDeg    int         `json:"wind_deg"`
	WindGust   float64     `json:"wind_gust"`
	Weather    []Condition `json:"weather"`
}

// OneCallHourly is one hour of the one-call hourly sequence.
type OneCallHourly struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	FeelsLike float64     `json:"feels_like"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	UVI       float64     `json:"uvi"`
	Clouds    int         `json:"clouds"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   int         `json:"wind_deg"`
	Weather   []Condition `json:"weather"`
	Pop       float64     `json:"pop"`
}

// OneCallDaily is one day of the one-call daily sequence; the provider
// supplies per-day aggregates directly, so no bucketing is required.
type OneCallDaily struct {
	Dt      int64  `json:"dt"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
	Summary string `json:"summary"`
	Temp    struct {
		Day   float64 `json:"day"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"temp"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   int         `json:"wind_deg"`
	Weather   []Condition `json:"weather"`
	Clouds    int         `json:"clouds"`
	Pop       float64     `json:"pop"`
	UVI       float64     `json:"uvi"`
}

// OneCallAlert is a government alert attached to the one-call payload.
type OneCallAlert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// OneCallResponse is the /data/3.0/onecall payload.
type OneCallResponse struct {
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	Timezone       string          `json:"timezone"`
	TimezoneOffset int             `json:"timezone_offset"`
	Current        OneCallCurrent  `json:"current"`
	Hourly         []OneCallHourly `json:"hourly"`
	Daily          []OneCallDaily  `json:"daily"`
	Alerts         []OneCallAlert  `json:"alerts"`
}

// GeoResult is one candidate from the /geo/1.0 direct or reverse endpoints.
type GeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}
