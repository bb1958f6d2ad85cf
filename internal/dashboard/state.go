package dashboard

import (
	"errors"

	"github.com/swelljoe/wthr-dashboard/internal/weather"
)

var (
	// ErrValidation is reported for an empty search without contacting the provider.
	ErrValidation = errors.New("please enter a city name")
	// ErrGeolocation is reported when the host cannot supply coordinates.
	ErrGeolocation = errors.New("unable to determine location")
)

// Phase is the dashboard's lifecycle position.
type Phase int

const (
	// PhaseIdle means nothing has been displayed yet; panels are hidden.
	PhaseIdle Phase = iota
	// PhaseLoaded means a snapshot is displayed. It is never left.
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// State is everything the page shows. Controllers replace it wholesale on
// every update; slices inside are never modified after publication.
type State struct {
	Phase    Phase
	Snapshot weather.Snapshot // valid when Phase == PhaseLoaded
	Forecast []weather.ForecastEntry
	Celsius  bool
	Recent   []string
	Err      error
}

// InitialState is the Idle state showing the given recent cities.
func InitialState(recentCities []string) State {
	return State{
		Phase:   PhaseIdle,
		Celsius: true,
		Recent:  recentCities,
	}
}
