package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client handles OpenWeatherMap API interactions
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

var _ Provider = (*Client)(nil)

// NewClient creates a new OpenWeatherMap API client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Now: time.Now,
	}
}

// get performs a metric-units request against endpoint and decodes the JSON
// body into out. A non-success status is reported as statusErr.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, statusErr error, out any) error {
	params.Set("units", "metric")
	params.Set("appid", c.APIKey)
	requestURL := c.BaseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", statusErr, endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

// CurrentResponse represents the /weather response
type CurrentResponse struct {
	Name     string `json:"name"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"` // seconds east of UTC
	Coord    struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// CurrentByCity fetches current conditions for a city name
func (c *Client) CurrentByCity(ctx context.Context, city string) (Snapshot, error) {
	params := url.Values{}
	params.Set("q", city)

	var cr CurrentResponse
	if err := c.get(ctx, "weather", params, ErrNotFound, &cr); err != nil {
		return Snapshot{}, err
	}
	return c.snapshot(&cr)
}

// CurrentByCoords fetches current conditions for a lat/lon
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (Snapshot, error) {
	var cr CurrentResponse
	if err := c.get(ctx, "weather", coordParams(lat, lon), ErrUpstream, &cr); err != nil {
		return Snapshot{}, err
	}
	return c.snapshot(&cr)
}

func (c *Client) snapshot(cr *CurrentResponse) (Snapshot, error) {
	if len(cr.Weather) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no weather conditions in response", ErrParse)
	}

	observed := c.Now()
	if cr.Dt > 0 {
		observed = time.Unix(cr.Dt, 0).In(time.FixedZone("", cr.Timezone))
	}

	return Snapshot{
		CityName:        cr.Name,
		Country:         cr.Sys.Country,
		ObservedAtLocal: observed,
		TemperatureC:    cr.Main.Temp,
		WindSpeedMS:     cr.Wind.Speed,
		HumidityPct:     cr.Main.Humidity,
		Condition:       cr.Weather[0].Main,
		Description:     cases.Title(language.English).String(cr.Weather[0].Description),
		Lat:             cr.Coord.Lat,
		Lon:             cr.Coord.Lon,
	}, nil
}

// ForecastItem is one 3-hour step of the /forecast response
type ForecastItem struct {
	DtTxt string `json:"dt_txt"` // "YYYY-MM-DD HH:MM:SS"
	Main  struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// ForecastResponse represents the /forecast response
type ForecastResponse struct {
	List []ForecastItem `json:"list"`
}

// Forecast fetches the 5-day/3-hour forecast and reduces it to one entry per day
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	var fr ForecastResponse
	if err := c.get(ctx, "forecast", coordParams(lat, lon), ErrUpstream, &fr); err != nil {
		return nil, err
	}
	return SelectNoon(fr.List), nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}
