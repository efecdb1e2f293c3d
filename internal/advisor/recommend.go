package advisor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/powerplant/plant-advisor/internal/domain"
)

// Recommend validates req, resolves its location, drops plants that cannot
// grow in the zone and returns the best-scoring rest. Answers for locations
// that resolved normally are cached by request hash.
func (s *Service) Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationSet, error) {
	if s.deps.Validator != nil {
		if err := s.deps.Validator.ValidateRequest(req); err != nil {
			return domain.RecommendationSet{}, err
		}
	}

	key := req.CacheKey()
	if set, ok := s.cached(ctx, key); ok {
		set.RequestID = req.RequestID
		s.saveLocation(ctx, req.SessionID, set.Location)
		return set, nil
	}

	res, err := s.ResolveLocation(ctx, req.Location)
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("resolve location: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.deps.DefaultLimit
	}
	candidates := domain.FilterByZone(s.deps.Catalog, res.Location.HardinessZone)
	s.metrics.CandidatesScored.Add(float64(len(candidates)))

	set := domain.RecommendationSet{
		ID:              uuid.NewString(),
		RequestID:       req.RequestID,
		Location:        res.Location,
		Recommendations: domain.Recommend(candidates, req.Preferences, limit),
		Retryable:       res.Retryable,
		CreatedAt:       s.deps.Clock.Now().UTC(),
	}
	set.Matches = domain.MatchResults(set.Recommendations)

	if !set.Retryable && s.deps.Cache != nil {
		if err := s.deps.Cache.Set(ctx, key, set); err != nil {
			s.logger.Warn("recommendation cache write failed", "error", err)
		}
	}
	s.saveLocation(ctx, req.SessionID, set.Location)

	s.logger.Debug("recommendations computed",
		"set_id", set.ID,
		"location", set.Location.Describe(),
		"zone", set.Location.HardinessZone,
		"candidates", len(candidates),
		"returned", len(set.Recommendations),
	)
	return set, nil
}

func (s *Service) cached(ctx context.Context, key string) (domain.RecommendationSet, bool) {
	if s.deps.Cache == nil {
		return domain.RecommendationSet{}, false
	}
	set, ok, err := s.deps.Cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("recommendation cache read failed", "error", err)
		s.metrics.RecommendationCache.WithLabelValues("error").Inc()
		return domain.RecommendationSet{}, false
	case !ok:
		s.metrics.RecommendationCache.WithLabelValues("miss").Inc()
		return domain.RecommendationSet{}, false
	}
	s.metrics.RecommendationCache.WithLabelValues("hit").Inc()
	return set, true
}
