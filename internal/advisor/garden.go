package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/powerplant/plant-advisor/internal/domain"
)

// NurseryResult lists nurseries near a resolved location.
type NurseryResult struct {
	Location  domain.Location  `json:"location"`
	Nurseries []domain.Nursery `json:"nurseries"`
	Retryable bool             `json:"retryable"`
	Fallback  bool             `json:"fallback,omitempty"` // built-in listings were used
}

// Nurseries finds nurseries near query, nearest first, optionally narrowed to
// those suited to plantType.
func (s *Service) Nurseries(ctx context.Context, query, plantType string) (NurseryResult, error) {
	res, err := s.ResolveLocation(ctx, query)
	if err != nil {
		return NurseryResult{}, err
	}

	origin := res.Location
	if !origin.HasCoords() {
		origin = domain.FallbackLocation()
		res.Retryable = true
	}

	found, fallback := s.nearby(ctx, origin)
	ranked := domain.RankNurseries(origin.Lat, origin.Lon, found, domain.MaxNurseries)

	return NurseryResult{
		Location:  origin,
		Nurseries: domain.FilterNurseriesByPlantType(ranked, plantType),
		Retryable: res.Retryable,
		Fallback:  fallback,
	}, nil
}

func (s *Service) nearby(ctx context.Context, origin domain.Location) ([]domain.Nursery, bool) {
	if s.deps.Nurseries == nil {
		return domain.MockNurseries(), true
	}
	found, err := s.deps.Nurseries.NearbyNurseries(ctx, origin.Lat, origin.Lon, s.deps.NurseryRadiusMeters)
	if err != nil {
		s.logger.Warn("nursery search failed, using fallback listings",
			"lat", origin.Lat,
			"lon", origin.Lon,
			"error", err,
		)
		s.metrics.ProviderRequests.WithLabelValues("places", "fallback").Inc()
		return domain.MockNurseries(), true
	}
	return found, false
}

// ErrNurseryNotFound is returned when a shopping list names a nursery that is
// not near the location.
var ErrNurseryNotFound = errors.New("nursery not found")

// ShoppingResult is a costed plant list with directions to the nursery.
type ShoppingResult struct {
	Plan          domain.ShoppingPlan `json:"plan"`
	DirectionsURL string              `json:"directionsUrl"`
}

// ShoppingList prices plants at the nursery nurseryID near query.
func (s *Service) ShoppingList(ctx context.Context, query, nurseryID string, plants []string) (ShoppingResult, error) {
	found, err := s.Nurseries(ctx, query, "")
	if err != nil {
		return ShoppingResult{}, err
	}
	for _, n := range found.Nurseries {
		if n.ID == nurseryID {
			return ShoppingResult{
				Plan:          domain.ShoppingList(plants, n),
				DirectionsURL: domain.DirectionsURL(n.Address),
			}, nil
		}
	}
	return ShoppingResult{}, fmt.Errorf("nursery %q: %w", nurseryID, ErrNurseryNotFound)
}

// AdviceResult is the seasonal and weather guidance for a location.
type AdviceResult struct {
	Location        domain.Location            `json:"location"`
	Advice          domain.Advice              `json:"advice"`
	Weather         domain.Weather             `json:"weather"`
	WeatherFallback bool                       `json:"weatherFallback,omitempty"`
	SoilMoisture    float64                    `json:"soilMoisture"`
	Tips            []string                   `json:"tips"`
	Calendar        map[domain.Season][]string `json:"calendar"`
	Retryable       bool                       `json:"retryable"`
}

// Advice combines the current season and frost dates for the location's zone
// with current weather and the zone's planting calendar.
func (s *Service) Advice(ctx context.Context, query string) (AdviceResult, error) {
	res, err := s.ResolveLocation(ctx, query)
	if err != nil {
		return AdviceResult{}, err
	}
	loc := res.Location

	advice := domain.AdviseAt(loc.HardinessZone, s.deps.Clock.Now())
	weather, fallback := s.currentWeather(ctx, loc)

	return AdviceResult{
		Location:        loc,
		Advice:          advice,
		Weather:         weather,
		WeatherFallback: fallback,
		SoilMoisture:    domain.SoilMoisture(weather.Humidity, weather.Precipitation),
		Tips:            domain.PlantingRecommendations(weather, loc.HardinessZone, advice.Season),
		Calendar:        domain.PlantingCalendar(loc.HardinessZone),
		Retryable:       res.Retryable,
	}, nil
}

// PlantingConditions checks current weather at query against plantType's
// optimal ranges.
func (s *Service) PlantingConditions(ctx context.Context, query, plantType string) (domain.PlantingConditions, error) {
	res, err := s.ResolveLocation(ctx, query)
	if err != nil {
		return domain.PlantingConditions{}, err
	}
	weather, _ := s.currentWeather(ctx, res.Location)
	season := domain.AdviseAt(res.Location.HardinessZone, s.deps.Clock.Now()).Season
	return domain.AnalyzePlantingConditions(weather, season, plantType), nil
}

func (s *Service) currentWeather(ctx context.Context, loc domain.Location) (domain.Weather, bool) {
	if s.deps.Weather == nil || !loc.HasCoords() {
		return domain.FallbackWeather(), true
	}
	w, err := s.deps.Weather.CurrentWeather(ctx, loc.Lat, loc.Lon)
	if err != nil {
		s.logger.Warn("weather lookup failed, using fallback reading",
			"lat", loc.Lat,
			"lon", loc.Lon,
			"error", err,
		)
		s.metrics.ProviderRequests.WithLabelValues("weather", "fallback").Inc()
		return domain.FallbackWeather(), true
	}
	return w, false
}
