package weather

import "strings"

const (
	noonMarker   = "12:00:00"
	forecastDays = 5
)

// SelectNoon keeps the entries stamped 12:00:00, at most one card per
// day for the first five days. Days without a noon step are skipped.
func SelectNoon(items []ForecastItem) []ForecastEntry {
	entries := make([]ForecastEntry, 0, forecastDays)
	for _, item := range items {
		if len(entries) >= forecastDays {
			break
		}
		if !strings.Contains(item.DtTxt, noonMarker) {
			continue
		}

		date, _, _ := strings.Cut(item.DtTxt, " ")
		entries = append(entries, ForecastEntry{
			DateLabel:    date,
			TemperatureC: item.Main.Temp,
			WindSpeedMS:  item.Wind.Speed,
			HumidityPct:  item.Main.Humidity,
		})
	}
	return entries
}
