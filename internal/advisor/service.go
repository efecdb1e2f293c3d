// Package advisor composes location resolution, scoring, nursery lookup and
// seasonal advice into the operations the HTTP API and the pipeline expose.
package advisor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/powerplant/plant-advisor/internal/observability"
)

// RecommendationCache stores computed recommendation sets by request hash.
type RecommendationCache interface {
	Get(ctx context.Context, key string) (domain.RecommendationSet, bool, error)
	Set(ctx context.Context, key string, set domain.RecommendationSet) error
}

// LocationStore remembers the locations a session resolved.
type LocationStore interface {
	SaveLocation(ctx context.Context, sessionID string, loc domain.Location) error
	LatestLocation(ctx context.Context, sessionID string) (domain.SavedLocation, error)
	RecentLocations(ctx context.Context, limit int) ([]domain.SavedLocation, error)
}

// RequestValidator rejects malformed recommendation requests.
type RequestValidator interface {
	ValidateRequest(req domain.RecommendationRequest) error
}

// Deps are the collaborators of a Service. Every provider is optional; a nil
// provider means the built-in fallback data is used. A nil Clock is real time.
type Deps struct {
	Clock       clockwork.Clock
	Geocoder    domain.Geocoder
	Weather     domain.WeatherProvider
	Nurseries   domain.NurseryProvider
	Suggestions domain.SuggestionProvider
	Cache       RecommendationCache
	Store       LocationStore
	Validator   RequestValidator
	Catalog     []domain.PlantCandidate

	DefaultLimit        int
	NurseryRadiusMeters int
}

// Service is process-scoped and safe for concurrent use.
type Service struct {
	deps    Deps
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New builds a Service. A nil catalog means the embedded catalog.
func New(deps Deps, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Catalog == nil {
		deps.Catalog = domain.DefaultCatalog()
	}
	if deps.DefaultLimit <= 0 {
		deps.DefaultLimit = domain.DefaultTopN
	}
	if deps.NurseryRadiusMeters <= 0 {
		deps.NurseryRadiusMeters = 25000
	}
	return &Service{deps: deps, logger: logger, metrics: metrics}
}

// LocationResult is a resolved location. Retryable is set when the answer is
// the fallback location and asking again may succeed.
type LocationResult struct {
	Location  domain.Location `json:"location"`
	Retryable bool            `json:"retryable"`
	Message   string          `json:"message,omitempty"`
}

const fallbackMessage = "We couldn't find that location, so we're showing results for Austin, TX. Try again or enter a zip code."

// ResolveLocation resolves a free-form query. Blank queries fail with
// domain.ErrMalformedInput; geocoding failures fall back to the default
// location instead of failing.
func (s *Service) ResolveLocation(ctx context.Context, query string) (LocationResult, error) {
	loc, err := domain.ResolveWithGeocoder(ctx, query, s.deps.Geocoder, s.logger)
	if errors.Is(err, domain.ErrUnresolvedLocation) {
		s.metrics.LocationFallbacks.Inc()
		return LocationResult{
			Location:  domain.FallbackLocation(),
			Retryable: true,
			Message:   fallbackMessage,
		}, nil
	}
	if err != nil {
		return LocationResult{}, err
	}
	return LocationResult{Location: loc}, nil
}

// ResolveCoordinates reverse geocodes a point. On failure the point is kept
// with a latitude-derived zone and the result is marked retryable.
func (s *Service) ResolveCoordinates(ctx context.Context, lat, lon float64) LocationResult {
	loc, err := domain.ResolveCoordinates(ctx, lat, lon, s.deps.Geocoder, s.logger)
	if err != nil {
		s.metrics.LocationFallbacks.Inc()
		return LocationResult{Location: loc, Retryable: true}
	}
	return LocationResult{Location: loc}
}

// SearchPlants fuzzy-matches query against the catalog.
func (s *Service) SearchPlants(query string) []domain.PlantCandidate {
	return domain.FuzzySearch(s.deps.Catalog, query, domain.PlantSearchFields, domain.FuzzyOptions{})
}

// Plant looks a catalog entry up by ID.
func (s *Service) Plant(id string) (domain.PlantCandidate, bool) {
	return domain.PlantByID(s.deps.Catalog, id)
}

// Suggest autocompletes a partial address. Short inputs return nothing.
func (s *Service) Suggest(ctx context.Context, input string) []domain.Suggestion {
	if !domain.ValidSuggestionQuery(input) {
		return nil
	}
	if s.deps.Suggestions == nil {
		return domain.MockSuggestions(input)
	}

	out, err := s.deps.Suggestions.Suggest(ctx, input)
	if err != nil {
		s.logger.Warn("place autocomplete failed, using fallback suggestions", "error", err)
		s.metrics.ProviderRequests.WithLabelValues("places", "fallback").Inc()
		return domain.MockSuggestions(input)
	}
	return out
}
