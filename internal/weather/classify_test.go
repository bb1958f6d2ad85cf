package weather

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		condition   string
		tempC       float64
		wantIcon    Icon
		wantExtreme bool
	}{
		{name: "rain beats cold", condition: "Rain", tempC: 5, wantIcon: IconRain},
		{name: "rain beats heat", condition: "Rain", tempC: 45, wantIcon: IconRain, wantExtreme: true},
		{name: "drizzle is not rain", condition: "Drizzle", tempC: 15, wantIcon: IconPartlySunny},
		{name: "clouds", condition: "Clouds", tempC: 35, wantIcon: IconCloud},
		{name: "hot clear", condition: "Clear", tempC: 35, wantIcon: IconSun},
		{name: "extreme heat", condition: "Clear", tempC: 41, wantIcon: IconSun, wantExtreme: true},
		{name: "forty is not extreme", condition: "Clear", tempC: 40, wantIcon: IconSun},
		{name: "thirty is not hot", condition: "Clear", tempC: 30, wantIcon: IconPartlySunny},
		{name: "cold clear", condition: "Clear", tempC: 9.9, wantIcon: IconSnowflake},
		{name: "ten is not cold", condition: "Clear", tempC: 10, wantIcon: IconPartlySunny},
		{name: "mild", condition: "Mist", tempC: 20, wantIcon: IconPartlySunny},
		{name: "case sensitive", condition: "rain", tempC: 20, wantIcon: IconPartlySunny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.condition, tt.tempC)
			if got.Icon != tt.wantIcon {
				t.Errorf("Classify(%q, %v).Icon = %q, want %q", tt.condition, tt.tempC, got.Icon, tt.wantIcon)
			}
			if got.ExtremeHeat != tt.wantExtreme {
				t.Errorf("Classify(%q, %v).ExtremeHeat = %v, want %v", tt.condition, tt.tempC, got.ExtremeHeat, tt.wantExtreme)
			}
		})
	}
}

func TestThemeFor(t *testing.T) {
	tests := []struct {
		condition string
		want      Theme
	}{
		{condition: "Rain", want: ThemeStorm},
		{condition: "Freezing Rain", want: ThemeStorm},
		{condition: "Clear", want: ThemeDefault},
		{condition: "Clouds", want: ThemeDefault},
		{condition: "", want: ThemeDefault},
	}

	for _, tt := range tests {
		if got := ThemeFor(tt.condition); got != tt.want {
			t.Errorf("ThemeFor(%q) = %q, want %q", tt.condition, got, tt.want)
		}
	}
}
