package weather

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means the provider did not recognize the requested city.
	ErrNotFound = errors.New("city not found")
	// ErrNetwork wraps transport failures talking to the provider.
	ErrNetwork = errors.New("network error")
	// ErrParse means the provider answered with a body we could not use.
	ErrParse = errors.New("malformed weather response")
	// ErrUpstream is a non-success status on the coordinate or forecast endpoints.
	ErrUpstream = errors.New("weather provider error")
)

// Provider is the set of lookups the dashboard needs from a weather source.
type Provider interface {
	CurrentByCity(ctx context.Context, city string) (Snapshot, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (Snapshot, error)
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error)
}

// Snapshot is one current-conditions reading. Temperature is always Celsius.
type Snapshot struct {
	CityName        string    `json:"city_name"`
	Country         string    `json:"country,omitempty"`
	ObservedAtLocal time.Time `json:"observed_at_local"`
	TemperatureC    float64   `json:"temperature_c"`
	WindSpeedMS     float64   `json:"wind_speed_ms"`
	HumidityPct     int       `json:"humidity_pct"`
	Condition       string    `json:"condition"`
	Description     string    `json:"description,omitempty"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
}

// ForecastEntry is the representative (noon) reading for one day.
type ForecastEntry struct {
	DateLabel    string  `json:"date"` // e.g., "2024-01-15"
	TemperatureC float64 `json:"temperature_c"`
	WindSpeedMS  float64 `json:"wind_speed_ms"`
	HumidityPct  int     `json:"humidity_pct"`
}
