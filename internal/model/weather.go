package model

// CurrentWeather mirrors open-meteo's "current_weather" object.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
	Time          string  `json:"time"`
}

// WeatherResponse is returned by GET /v1/weather.
type WeatherResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Current   *CurrentWeather `json:"current_weather"`
	LocalTime string          `json:"localTime,omitempty"`
	Cached    bool            `json:"cached"`
}

// Tokyo is the fixed location the index screen reports on.
const (
	TokyoLatitude  = 35.6895
	TokyoLongitude = 139.6917
	TokyoTimeZone  = "Asia/Tokyo"
)
