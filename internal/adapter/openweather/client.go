// Package openweather implements domain.WeatherProvider on the
// OpenWeatherMap current weather API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/powerplant/plant-advisor/internal/observability"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions in imperial units.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// CurrentWeather returns the reading at lat/lon.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', 4, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', 4, 64)},
		"appid": {c.apiKey},
		"units": {"imperial"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return domain.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return domain.Weather{}, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var cw currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&cw); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return domain.Weather{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.ProviderRequests.WithLabelValues("weather", "success").Inc()
	c.logger.Debug("weather fetched", "lat", lat, "lon", lon, "temp", cw.Main.Temp)
	return cw.toDomain(), nil
}

// OpenWeatherMap response types.

type currentWeather struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain *precipitation `json:"rain,omitempty"`
	Snow *precipitation `json:"snow,omitempty"`
}

type precipitation struct {
	OneHour float64 `json:"1h"`
}

func (cw currentWeather) toDomain() domain.Weather {
	w := domain.Weather{
		Temperature: math.Round(cw.Main.Temp),
		Humidity:    cw.Main.Humidity,
		WindSpeed:   cw.Wind.Speed,
	}
	if len(cw.Weather) > 0 {
		w.Conditions = cw.Weather[0].Description
		if w.Conditions == "" {
			w.Conditions = cw.Weather[0].Main
		}
	}
	switch {
	case cw.Rain != nil && cw.Rain.OneHour > 0:
		w.Precipitation = cw.Rain.OneHour
	case cw.Snow != nil:
		w.Precipitation = cw.Snow.OneHour
	}
	return w
}
