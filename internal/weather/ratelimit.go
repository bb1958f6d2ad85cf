package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Provider so every upstream call first waits for a
// token. OpenWeatherMap's free tier allows 60 calls/minute.
type RateLimited struct {
	provider Provider
	limiter  *rate.Limiter
}

var _ Provider = (*RateLimited)(nil)

// NewRateLimited creates a rate limited provider.
// rps may be fractional; burst is the maximum burst size allowed.
func NewRateLimited(provider Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait canceled: %w", ErrNetwork, err)
	}
	return nil
}

// CurrentByCity waits for the limiter, then forwards to the provider.
func (r *RateLimited) CurrentByCity(ctx context.Context, city string) (Snapshot, error) {
	if err := r.wait(ctx); err != nil {
		return Snapshot{}, err
	}
	return r.provider.CurrentByCity(ctx, city)
}

// CurrentByCoords waits for the limiter, then forwards to the provider.
func (r *RateLimited) CurrentByCoords(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if err := r.wait(ctx); err != nil {
		return Snapshot{}, err
	}
	return r.provider.CurrentByCoords(ctx, lat, lon)
}

// Forecast waits for the limiter, then forwards to the provider.
func (r *RateLimited) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Forecast(ctx, lat, lon)
}
