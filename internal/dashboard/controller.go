package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/swelljoe/wthr-dashboard/internal/recent"
	"github.com/swelljoe/wthr-dashboard/internal/weather"
)

// Locator supplies the user's coordinates.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (float64, float64, error)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Controller runs the dashboard's user actions for one browser.
//
// Every fetching action gets a sequence number and cancels the one before
// it; a result is only published if its sequence number is still the
// latest, so a slow earlier search can never overwrite a newer one.
type Controller struct {
	provider weather.Provider
	recent   *recent.Store

	// recordMu keeps the published recent list in the order it was persisted.
	recordMu sync.Mutex

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

// NewController creates a controller in the Idle state with the persisted
// recent-city list loaded.
func NewController(ctx context.Context, provider weather.Provider, store *recent.Store) *Controller {
	return &Controller{
		provider: provider,
		recent:   store,
		state:    InitialState(store.Load(ctx)),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitCityName searches by city name. Blank input is rejected without a
// network call.
func (c *Controller) SubmitCityName(ctx context.Context, text string) State {
	city := strings.TrimSpace(text)
	if city == "" {
		c.update(func(s State) State {
			s.Err = ErrValidation
			return s
		})
		return c.State()
	}

	seq, fetchCtx, cancel := c.begin(ctx)
	defer cancel()

	c.apply(seq, func(s State) State {
		s.Err = nil
		return s
	})

	c.record(ctx, city)

	c.load(fetchCtx, seq, func(ctx context.Context) (weather.Snapshot, error) {
		return c.provider.CurrentByCity(ctx, city)
	})
	return c.State()
}

// RequestGeolocation asks loc for coordinates and searches by them. The
// city is not recorded in the recent list since no name was typed.
func (c *Controller) RequestGeolocation(ctx context.Context, loc Locator) State {
	seq, fetchCtx, cancel := c.begin(ctx)
	defer cancel()

	lat, lon, err := loc.Locate(fetchCtx)
	if err != nil {
		c.fail(seq, fmt.Errorf("%w: %w", ErrGeolocation, err))
		return c.State()
	}

	c.load(fetchCtx, seq, func(ctx context.Context) (weather.Snapshot, error) {
		return c.provider.CurrentByCoords(ctx, lat, lon)
	})
	return c.State()
}

// ToggleUnit flips between Celsius and Fahrenheit display. It does nothing
// before the first snapshot is loaded.
func (c *Controller) ToggleUnit() State {
	c.update(func(s State) State {
		if s.Phase != PhaseLoaded {
			return s
		}
		s.Celsius = !s.Celsius
		return s
	})
	return c.State()
}

// SelectRecentCity searches for a city picked from the recent list. The
// placeholder entry is ignored.
func (c *Controller) SelectRecentCity(ctx context.Context, name string) State {
	if name == "" || name == recent.Placeholder {
		return c.State()
	}
	return c.SubmitCityName(ctx, name)
}

// load fetches the current snapshot, then the forecast at the snapshot's
// coordinates, and publishes both together.
func (c *Controller) load(ctx context.Context, seq uint64, fetch func(context.Context) (weather.Snapshot, error)) {
	snap, err := fetch(ctx)
	if err != nil {
		c.fail(seq, err)
		return
	}

	var published error
	forecast, err := c.provider.Forecast(ctx, snap.Lat, snap.Lon)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			log.Printf("dashboard: forecast for %s canceled", snap.CityName)
			return
		}
		log.Printf("dashboard: forecast for %s failed: %v", snap.CityName, err)
		forecast = []weather.ForecastEntry{}
		published = fmt.Errorf("forecast: %w", err)
	}

	c.apply(seq, func(s State) State {
		s.Phase = PhaseLoaded
		s.Snapshot = snap
		s.Forecast = forecast
		s.Celsius = true
		s.Err = published
		return s
	})
}

func (c *Controller) record(ctx context.Context, city string) {
	c.recordMu.Lock()
	defer c.recordMu.Unlock()

	cities := c.recent.Record(ctx, city)
	c.update(func(s State) State {
		s.Recent = cities
		return s
	})
}

func (c *Controller) fail(seq uint64, err error) {
	if errors.Is(err, context.Canceled) {
		log.Printf("dashboard: request #%d canceled", seq)
		return
	}
	c.apply(seq, func(s State) State {
		s.Err = err
		return s
	})
}

// begin starts a new fetching action, canceling any in flight.
func (c *Controller) begin(parent context.Context) (uint64, context.Context, context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	return c.seq, ctx, cancel
}

// apply publishes fn's result if seq is still the latest action.
func (c *Controller) apply(seq uint64, fn func(State) State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		log.Printf("dashboard: discarding stale result #%d (latest #%d)", seq, c.seq)
		return false
	}
	c.state = fn(c.state)
	return true
}

func (c *Controller) update(fn func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
}
