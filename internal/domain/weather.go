package domain

import "time"

// GeoPoint names a coordinate pair.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// WeatherData is the environmental snapshot consumed by the layout
// generator and stored alongside each design version.
type WeatherData struct {
	WindDirection   string    `json:"windDirection"` // cardinal/intercardinal string, e.g. "North-East"
	WindSpeed       float64   `json:"windSpeed"`     // km/h
	SolarIrradiance float64   `json:"solarIrradiance"` // kWh/m²
	Temperature     float64   `json:"temperature"`   // °C
	Humidity        float64   `json:"humidity"`      // %
	Location        GeoPoint  `json:"location"`
	Timestamp       time.Time `json:"timestamp"`
}
