package weather

import (
	"encoding/json"
	"testing"
)

func decodeItems(t *testing.T, raw string) []ForecastItem {
	t.Helper()
	var fr ForecastResponse
	if err := json.Unmarshal([]byte(raw), &fr); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return fr.List
}

// TestSelectNoon_FiveDays tests a full 40-step series with one noon per day
func TestSelectNoon_FiveDays(t *testing.T) {
	items := decodeItems(t, forecastJSON(5, -1))
	if len(items) != 40 {
		t.Fatalf("fixture should have 40 entries, got %d", len(items))
	}

	entries := SelectNoon(items)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	expectedDates := []string{"2024-01-15", "2024-01-16", "2024-01-17", "2024-01-18", "2024-01-19"}
	for i, e := range entries {
		if e.DateLabel != expectedDates[i] {
			t.Errorf("entry %d: expected date %s, got %s", i, expectedDates[i], e.DateLabel)
		}
		wantTemp := float64(i*10+12) + 0.5
		if e.TemperatureC != wantTemp {
			t.Errorf("entry %d: expected noon temperature %v, got %v", i, wantTemp, e.TemperatureC)
		}
		if e.HumidityPct != 50+i {
			t.Errorf("entry %d: expected humidity %d, got %d", i, 50+i, e.HumidityPct)
		}
		if e.WindSpeedMS != float64(i+1)+0.25 {
			t.Errorf("entry %d: unexpected wind %v", i, e.WindSpeedMS)
		}
	}
}

// TestSelectNoon_MissingDay tests that a day without a noon step is skipped
func TestSelectNoon_MissingDay(t *testing.T) {
	entries := SelectNoon(decodeItems(t, forecastJSON(5, 2)))
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.DateLabel == "2024-01-17" {
			t.Errorf("day without noon entry should be skipped, got %+v", e)
		}
	}
}

// TestSelectNoon_CapsAtFive tests that a longer series still yields five cards
func TestSelectNoon_CapsAtFive(t *testing.T) {
	entries := SelectNoon(decodeItems(t, forecastJSON(7, -1)))
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	if entries[4].DateLabel != "2024-01-19" {
		t.Errorf("expected the first five days, last was %s", entries[4].DateLabel)
	}
}

func TestSelectNoon_Empty(t *testing.T) {
	tests := []struct {
		name  string
		items []ForecastItem
	}{
		{name: "nil", items: nil},
		{name: "no noon entries", items: []ForecastItem{{DtTxt: "2024-01-15 09:00:00"}, {DtTxt: "2024-01-15 15:00:00"}}},
		{name: "empty label", items: []ForecastItem{{DtTxt: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := SelectNoon(tt.items)
			if entries == nil {
				t.Error("expected empty slice, got nil")
			}
			if len(entries) != 0 {
				t.Errorf("expected no entries, got %d", len(entries))
			}
		})
	}
}
