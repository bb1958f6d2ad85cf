package weather

import "strings"

// Icon is the display symbol for a reading.
type Icon string

const (
	IconRain        Icon = "🌧️"
	IconCloud       Icon = "☁️"
	IconSun         Icon = "☀️"
	IconSnowflake   Icon = "❄️"
	IconPartlySunny Icon = "🌤️"
)

// Theme is the page background selected for a condition.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeStorm   Theme = "storm"
)

const (
	hotThreshold     = 30.0
	coldThreshold    = 10.0
	extremeHeatLimit = 40.0
)

// Classification is the derived display state for a reading.
type Classification struct {
	Icon        Icon
	ExtremeHeat bool
}

// Classify picks an icon and heat alert for a condition label and Celsius
// temperature. Condition rules win over temperature rules.
func Classify(condition string, tempC float64) Classification {
	return Classification{
		Icon:        iconFor(condition, tempC),
		ExtremeHeat: tempC > extremeHeatLimit,
	}
}

func iconFor(condition string, tempC float64) Icon {
	switch {
	case strings.Contains(condition, "Rain"):
		return IconRain
	case strings.Contains(condition, "Cloud"):
		return IconCloud
	case tempC > hotThreshold:
		return IconSun
	case tempC < coldThreshold:
		return IconSnowflake
	default:
		return IconPartlySunny
	}
}

// ThemeFor derives the background theme from the latest condition label.
func ThemeFor(condition string) Theme {
	if strings.Contains(condition, "Rain") {
		return ThemeStorm
	}
	return ThemeDefault
}
