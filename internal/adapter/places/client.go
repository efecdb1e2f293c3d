// Package places implements nursery search and address autocomplete on the
// Google Places web service.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/powerplant/plant-advisor/internal/observability"
)

// DefaultBaseURL is the Places API root.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// searchKeywords are run as separate nearby searches and merged.
var searchKeywords = []string{"nursery garden center", "plant store greenhouse"}

// Client implements domain.NurseryProvider and domain.SuggestionProvider.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Places client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// NearbyNurseries runs one nearby search per keyword set and merges the
// results by place ID. The first search must succeed; later ones are best
// effort. Distances are left for the caller to compute.
func (c *Client) NearbyNurseries(ctx context.Context, lat, lon float64, radiusMeters int) ([]domain.Nursery, error) {
	var nurseries []domain.Nursery
	seen := make(map[string]bool)

	for i, keyword := range searchKeywords {
		params := url.Values{
			"location": {fmt.Sprintf("%f,%f", lat, lon)},
			"radius":   {strconv.Itoa(radiusMeters)},
			"type":     {"store"},
			"keyword":  {keyword},
			"key":      {c.apiKey},
		}
		var resp nearbyResponse
		if err := c.get(ctx, "/nearbysearch/json", params, &resp); err != nil {
			if i == 0 {
				c.metrics.ProviderRequests.WithLabelValues("places", "error").Inc()
				return nil, err
			}
			c.logger.Warn("secondary nursery search failed", "keyword", keyword, "error", err)
			continue
		}
		if err := resp.err(); err != nil {
			if i == 0 {
				c.metrics.ProviderRequests.WithLabelValues("places", "error").Inc()
				return nil, err
			}
			c.logger.Warn("secondary nursery search rejected", "keyword", keyword, "error", err)
			continue
		}

		for _, p := range resp.Results {
			if seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			nurseries = append(nurseries, p.toNursery())
		}
	}

	c.metrics.ProviderRequests.WithLabelValues("places", "success").Inc()
	return nurseries, nil
}

// Suggest autocompletes a US address. Inputs shorter than
// domain.MinSuggestionQuery return no suggestions without a request.
func (c *Client) Suggest(ctx context.Context, input string) ([]domain.Suggestion, error) {
	if !domain.ValidSuggestionQuery(input) {
		return nil, nil
	}
	params := url.Values{
		"input":      {input},
		"types":      {"address"},
		"components": {"country:us"},
		"key":        {c.apiKey},
	}
	var resp autocompleteResponse
	if err := c.get(ctx, "/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}

	out := make([]domain.Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, domain.Suggestion{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("places API error: status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Places API response types.

// status is the API-level outcome carried in every response body.
type status struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (s status) err() error {
	switch s.Status {
	case "OK", "ZERO_RESULTS":
		return nil
	}
	return fmt.Errorf("places API status %s: %s", s.Status, s.ErrorMessage)
}

type nearbyResponse struct {
	status
	Results []place `json:"results"`
}

type place struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating       float64 `json:"rating"`
	PriceLevel   int     `json:"price_level"`
	OpeningHours *struct {
		OpenNow     bool     `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
}

func (p place) toNursery() domain.Nursery {
	n := domain.Nursery{
		ID:          p.PlaceID,
		Name:        p.Name,
		Address:     p.Vicinity,
		Lat:         p.Geometry.Location.Lat,
		Lon:         p.Geometry.Location.Lng,
		Rating:      p.Rating,
		PriceLevel:  p.PriceLevel,
		Specialties: domain.InferSpecialties(p.Name),
	}
	if p.OpeningHours != nil {
		n.IsOpenNow = p.OpeningHours.OpenNow
		n.Hours = p.OpeningHours.WeekdayText
	}
	return n
}

type autocompleteResponse struct {
	status
	Predictions []struct {
		PlaceID              string `json:"place_id"`
		Description          string `json:"description"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}
