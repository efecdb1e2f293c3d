package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/powerplant/plant-advisor/internal/advisor"
	"github.com/powerplant/plant-advisor/internal/domain"
)

const maxBodyBytes = 64 << 10

// SessionHeader identifies the caller's session for saved locations.
const SessionHeader = "X-Session-ID"

// Advisor is the service the API delegates to.
type Advisor interface {
	ResolveLocation(ctx context.Context, query string) (advisor.LocationResult, error)
	ResolveCoordinates(ctx context.Context, lat, lon float64) advisor.LocationResult
	SavedLocation(ctx context.Context, sessionID string) (advisor.LocationResult, error)
	RememberLocation(ctx context.Context, sessionID string, loc domain.Location)
	RecentLocations(ctx context.Context, limit int) ([]domain.SavedLocation, error)
	Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationSet, error)
	Nurseries(ctx context.Context, query, plantType string) (advisor.NurseryResult, error)
	ShoppingList(ctx context.Context, query, nurseryID string, plants []string) (advisor.ShoppingResult, error)
	Advice(ctx context.Context, query string) (advisor.AdviceResult, error)
	PlantingConditions(ctx context.Context, query, plantType string) (domain.PlantingConditions, error)
	SearchPlants(query string) []domain.PlantCandidate
	Plant(id string) (domain.PlantCandidate, bool)
	Suggest(ctx context.Context, input string) []domain.Suggestion
}

// BodyValidator checks a raw recommendation request body.
type BodyValidator interface {
	ValidateJSON(data []byte) error
}

type api struct {
	svc       Advisor
	validator BodyValidator
	logger    *slog.Logger
}

func (a *api) handleLocation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("lat") || q.Has("lng") {
		lat, lon, err := parseCoords(q.Get("lat"), q.Get("lng"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, a.svc.ResolveCoordinates(r.Context(), lat, lon))
		return
	}

	session := r.Header.Get(SessionHeader)
	query := strings.TrimSpace(q.Get("q"))
	if query == "" && session != "" {
		res, err := a.svc.SavedLocation(r.Context(), session)
		if err != nil {
			a.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := a.svc.ResolveLocation(r.Context(), query)
	if err != nil {
		a.fail(w, err)
		return
	}
	if !res.Retryable {
		a.svc.RememberLocation(r.Context(), session, res.Location)
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handleRecentLocations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	recent, err := a.svc.RecentLocations(r.Context(), limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": recent})
}

func (a *api) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if a.validator != nil {
		if err := a.validator.ValidateJSON(body); err != nil {
			a.fail(w, err)
			return
		}
	}

	var req domain.RecommendationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.fail(w, fmt.Errorf("decode request: %w: %w", domain.ErrMalformedInput, err))
		return
	}
	if req.SessionID == "" {
		req.SessionID = r.Header.Get("X-Session-ID")
	}

	set, err := a.svc.Recommend(r.Context(), req)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (a *api) handleNurseries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := a.svc.Nurseries(r.Context(), q.Get("location"), q.Get("plantType"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type shoppingRequest struct {
	Location  string   `json:"location"`
	NurseryID string   `json:"nurseryId"`
	Plants    []string `json:"plants"`
}

func (a *api) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	var req shoppingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := a.svc.ShoppingList(r.Context(), req.Location, req.NurseryID, req.Plants)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handleAdvice(w http.ResponseWriter, r *http.Request) {
	res, err := a.svc.Advice(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handleConditions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := a.svc.PlantingConditions(r.Context(), q.Get("location"), q.Get("plantType"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handlePlantSearch(w http.ResponseWriter, r *http.Request) {
	plants := a.svc.SearchPlants(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"plants": plants, "count": len(plants)})
}

func (a *api) handlePlant(w http.ResponseWriter, r *http.Request) {
	p, ok := a.svc.Plant(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("plant not found"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) handleDistance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat1, lng1, err := parseCoords(q.Get("lat1"), q.Get("lng1"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lat2, lng2, err := parseCoords(q.Get("lat2"), q.Get("lng2"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	miles := domain.MilesBetween(lat1, lng1, lat2, lng2)
	writeJSON(w, http.StatusOK, map[string]float64{"miles": math.Round(miles*10) / 10})
}

func (a *api) handleSuggest(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if !domain.ValidSuggestionQuery(input) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "INVALID_REQUEST",
			"predictions": []domain.Suggestion{},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "OK",
		"predictions": a.svc.Suggest(r.Context(), input),
	})
}

// fail maps service errors to status codes.
func (a *api) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, advisor.ErrNurseryNotFound), errors.Is(err, domain.ErrNoSavedLocation):
		writeError(w, http.StatusNotFound, err)
	default:
		a.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonStr)
	}
	return lat, lon, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
