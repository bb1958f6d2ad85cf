package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/swelljoe/wthr-dashboard/internal/recent"
	"github.com/swelljoe/wthr-dashboard/internal/weather"
)

const extremeHeatMessage = "⚠ Extreme Heat Alert!"

// View is the fully formatted page model derived from a State.
type View struct {
	Phase       string          `json:"phase"`
	Loaded      bool            `json:"loaded"`
	Title       string          `json:"title,omitempty"`
	Temperature string          `json:"temperature,omitempty"`
	Wind        string          `json:"wind,omitempty"`
	Humidity    string          `json:"humidity,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Description string          `json:"description,omitempty"`
	Icon        weather.Icon    `json:"icon,omitempty"`
	Theme       weather.Theme   `json:"theme"`
	Alert       string          `json:"alert,omitempty"`
	Error       string          `json:"error,omitempty"`
	ToggleLabel string          `json:"toggle_label"`
	Forecast    []ForecastCard  `json:"forecast"`
	Recent      recent.Dropdown `json:"recent"`
}

// ForecastCard is one day in the forecast strip.
type ForecastCard struct {
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
}

// Render maps a State to its View. It has no side effects; the theme and
// alert are recomputed from the snapshot every time.
func Render(s State) View {
	v := View{
		Phase:       s.Phase.String(),
		Loaded:      s.Phase == PhaseLoaded,
		Theme:       weather.ThemeDefault,
		Error:       errorMessage(s.Err),
		ToggleLabel: toggleLabel(s.Celsius),
		Forecast:    make([]ForecastCard, 0, len(s.Forecast)),
		Recent:      recent.Render(s.Recent),
	}

	if !v.Loaded {
		return v
	}

	snap := s.Snapshot
	class := weather.Classify(snap.Condition, snap.TemperatureC)

	v.Title = fmt.Sprintf("%s (%s)", snap.CityName, snap.ObservedAtLocal.Format("1/2/2006"))
	v.Temperature = "Temperature: " + weather.FormatTemperature(snap.TemperatureC, s.Celsius)
	v.Wind = "Wind: " + formatNumber(snap.WindSpeedMS) + " m/s"
	v.Humidity = fmt.Sprintf("Humidity: %d%%", snap.HumidityPct)
	v.Condition = snap.Condition
	v.Description = snap.Description
	v.Icon = class.Icon
	v.Theme = weather.ThemeFor(snap.Condition)
	if class.ExtremeHeat {
		v.Alert = extremeHeatMessage
	}

	for _, f := range s.Forecast {
		v.Forecast = append(v.Forecast, ForecastCard{
			Date:        f.DateLabel,
			Temperature: "🌡 " + formatNumber(f.TemperatureC) + " °C",
			Wind:        "💨 " + formatNumber(f.WindSpeedMS) + " m/s",
			Humidity:    fmt.Sprintf("💧 %d%%", f.HumidityPct),
		})
	}

	return v
}

// toggleLabel names the unit the toggle switches to.
func toggleLabel(celsius bool) string {
	if celsius {
		return "°F"
	}
	return "°C"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "Please enter a city name"
	case errors.Is(err, weather.ErrNotFound):
		return "City not found"
	case errors.Is(err, ErrGeolocation):
		return "Unable to determine your location"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, weather.ErrNetwork):
		return "Could not reach the weather service"
	case errors.Is(err, weather.ErrParse), errors.Is(err, weather.ErrUpstream):
		return "Weather data is currently unavailable"
	default:
		return err.Error()
	}
}
