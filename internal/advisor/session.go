package advisor

import (
	"context"
	"fmt"

	"github.com/powerplant/plant-advisor/internal/domain"
)

const maxRecentLocations = 100

// RememberLocation saves loc as the session's latest location. Store failures
// are logged, not returned.
func (s *Service) RememberLocation(ctx context.Context, sessionID string, loc domain.Location) {
	s.saveLocation(ctx, sessionID, loc)
}

// SavedLocation returns the location the session saved last. It fails with
// domain.ErrNoSavedLocation when there is none or no store is configured.
func (s *Service) SavedLocation(ctx context.Context, sessionID string) (LocationResult, error) {
	if sessionID == "" || s.deps.Store == nil {
		return LocationResult{}, domain.ErrNoSavedLocation
	}
	saved, err := s.deps.Store.LatestLocation(ctx, sessionID)
	if err != nil {
		return LocationResult{}, fmt.Errorf("latest location: %w", err)
	}
	return LocationResult{Location: saved.Location}, nil
}

// RecentLocations lists the newest saved locations across sessions, at most
// maxRecentLocations. Without a store the list is empty.
func (s *Service) RecentLocations(ctx context.Context, limit int) ([]domain.SavedLocation, error) {
	if s.deps.Store == nil {
		return []domain.SavedLocation{}, nil
	}
	limit = min(limit, maxRecentLocations)
	out, err := s.deps.Store.RecentLocations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent locations: %w", err)
	}
	return out, nil
}

func (s *Service) saveLocation(ctx context.Context, sessionID string, loc domain.Location) {
	if sessionID == "" || s.deps.Store == nil {
		return
	}
	if err := s.deps.Store.SaveLocation(ctx, sessionID, loc); err != nil {
		s.logger.Warn("save location failed", "session_id", sessionID, "error", err)
	}
}
