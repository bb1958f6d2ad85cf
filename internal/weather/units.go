package weather

import "fmt"

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// fahrenheitToCelsius converts °F to °C.
func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// FormatTemperature renders a Celsius reading in the requested unit with
// one decimal. The input is never modified, so toggling units is lossless.
func FormatTemperature(celsius float64, inCelsius bool) string {
	if inCelsius {
		return fmt.Sprintf("%.1f °C", celsius)
	}
	return fmt.Sprintf("%.1f °F", CelsiusToFahrenheit(celsius))
}
