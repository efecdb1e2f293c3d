package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/powerplant/plant-advisor/internal/adapter/httpadapter"
	"github.com/powerplant/plant-advisor/internal/adapter/sqlite"
	"github.com/powerplant/plant-advisor/internal/advisor"
	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/powerplant/plant-advisor/internal/observability"
	"github.com/powerplant/plant-advisor/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, readyErr error) *httpadapter.Server {
	t.Helper()
	return newTestServerWithDeps(t, advisor.Deps{}, readyErr)
}

func newTestServerWithDeps(t *testing.T, deps advisor.Deps, readyErr error) *httpadapter.Server {
	t.Helper()
	v, err := validation.New()
	require.NoError(t, err)
	metrics := observability.NewMetricsForTesting()
	svc := advisor.New(deps, discardLogger(), metrics)
	ready := httpadapter.ReadinessFunc(func(context.Context) error { return readyErr })
	return httpadapter.NewServer(":0", svc, v, ready, metrics, discardLogger())
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doSession(t, srv, method, target, body, "")
}

func doSession(t *testing.T, srv http.Handler, method, target, body, session string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if session != "" {
		req.Header.Set(httpadapter.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitSchema(context.Background()))
	return store
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthzReturns200(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := do(t, newTestServer(t, errors.New("not ready yet")), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestLocation(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/location?q=78701", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[advisor.LocationResult](t, rec)
	assert.Equal(t, "Austin", res.Location.City)
	assert.Equal(t, "8b", res.Location.HardinessZone)
	assert.False(t, res.Retryable)

	rec = do(t, srv, http.MethodGet, "/api/v1/location?q=", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocation_SessionPrefill(t *testing.T) {
	srv := newTestServerWithDeps(t, advisor.Deps{Store: openStore(t)}, nil)

	rec := doSession(t, srv, http.MethodGet, "/api/v1/location", "", "sess-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doSession(t, srv, http.MethodGet, "/api/v1/location?q=98101", "", "sess-1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doSession(t, srv, http.MethodGet, "/api/v1/location", "", "sess-1")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[advisor.LocationResult](t, rec)
	assert.Equal(t, "Seattle", res.Location.City)
	assert.Equal(t, "9a", res.Location.HardinessZone)

	rec = doSession(t, srv, http.MethodPost, "/api/v1/recommendations", herbRequest, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doSession(t, srv, http.MethodGet, "/api/v1/location", "", "sess-2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/location", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocation_SessionWithoutStore(t *testing.T) {
	rec := doSession(t, newTestServer(t, nil), http.MethodGet, "/api/v1/location", "", "sess-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentLocations(t *testing.T) {
	srv := newTestServerWithDeps(t, advisor.Deps{Store: openStore(t)}, nil)
	for _, q := range []string{"10001", "60601", "98101"} {
		rec := doSession(t, srv, http.MethodGet, "/api/v1/location?q="+q, "", "sess-"+q)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/locations/recent?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]domain.SavedLocation](t, rec)
	require.Len(t, body["locations"], 2)
	assert.Equal(t, "sess-98101", body["locations"][0].SessionID)
	assert.Equal(t, "Chicago", body["locations"][1].Location.City)

	rec = do(t, srv, http.MethodGet, "/api/v1/locations/recent?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocation_Coordinates(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/location?lat=44.98&lng=-93.26", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[advisor.LocationResult](t, rec)
	assert.True(t, res.Retryable)
	assert.Equal(t, 44.98, res.Location.Lat)

	rec = do(t, srv, http.MethodGet, "/api/v1/location?lat=200&lng=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const herbRequest = `{"requestId":"r-1","location":"78701","preferences":{"plantTypes":["herbs"],"sunExposure":"full-sun","experienceLevel":"beginner","primaryGoal":"food","specialInterests":["fragrant plants"]}}`

func TestRecommendations(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/recommendations", herbRequest)
	require.Equal(t, http.StatusOK, rec.Code)

	set := decode[domain.RecommendationSet](t, rec)
	assert.Equal(t, "r-1", set.RequestID)
	assert.NotEmpty(t, set.ID)
	require.Len(t, set.Recommendations, domain.DefaultTopN)
	assert.Equal(t, "Sweet Basil", set.Recommendations[0].Plant.Name)
	assert.Equal(t, 100, set.Recommendations[0].Score)
	assert.Contains(t, rec.Body.String(), `"matchScore":100`)
}

func TestRecommendations_Invalid(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"location":`},
		{"missing preferences", `{"location":"78701"}`},
		{"bad enum", `{"location":"78701","preferences":{"sunExposure":"dark","experienceLevel":"beginner","primaryGoal":"food"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/recommendations", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], "malformed input")
		})
	}
}

func TestNurseries(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/nurseries?location=78701", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[advisor.NurseryResult](t, rec)
	require.Len(t, res.Nurseries, 3)
	assert.Equal(t, "1", res.Nurseries[0].ID)
	assert.True(t, res.Fallback)
}

func TestShoppingList(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/shopping-list", `{"location":"78701","nurseryId":"2","plants":["roses"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[advisor.ShoppingResult](t, rec)
	assert.Equal(t, 25.0, res.Plan.EstimatedTotal)
	assert.NotEmpty(t, res.DirectionsURL)

	rec = do(t, srv, http.MethodPost, "/api/v1/shopping-list", `{"location":"78701","nurseryId":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvice(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/advice?location=Denver,%20CO", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[advisor.AdviceResult](t, rec)
	assert.Equal(t, "5b", res.Advice.Zone)
	assert.True(t, res.WeatherFallback)
	assert.NotEmpty(t, res.Tips)
}

func TestConditions(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/conditions?location=78701&plantType=lettuce", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lettuce", decode[domain.PlantingConditions](t, rec).PlantType)
}

func TestPlantSearch(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/plants/search?q=lavendr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Plants []domain.PlantCandidate `json:"plants"`
		Count  int                     `json:"count"`
	}](t, rec)
	require.NotZero(t, body.Count)
	assert.Equal(t, "Lavender", body.Plants[0].Name)

	rec = do(t, srv, http.MethodGet, "/api/v1/plants/11", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Boxwood", decode[domain.PlantCandidate](t, rec).Name)

	rec = do(t, srv, http.MethodGet, "/api/v1/plants/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDistance(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/distance?lat1=30.2672&lng1=-97.7431&lat2=29.7604&lng2=-95.3698", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 146.3, decode[map[string]float64](t, rec)["miles"], 0.05)

	rec = do(t, srv, http.MethodGet, "/api/v1/distance?lat1=abc&lng1=0&lat2=0&lng2=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoordinates_RejectNaN(t *testing.T) {
	srv := newTestServer(t, nil)
	paths := []string{
		"/api/v1/distance?lat1=NaN&lng1=0&lat2=0&lng2=0",
		"/api/v1/distance?lat1=0&lng1=0&lat2=0&lng2=nan",
		"/api/v1/location?lat=NaN&lng=NaN",
		"/api/v1/location?lat=10&lng=NaN",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], "invalid")
		})
	}
}

func TestSuggest(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/suggest?input=ab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	short := decode[map[string]any](t, rec)
	assert.Equal(t, "INVALID_REQUEST", short["status"])
	assert.Empty(t, short["predictions"])

	rec = do(t, srv, http.MethodGet, "/api/v1/suggest?input=Main%20St", "")
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[struct {
		Status      string              `json:"status"`
		Predictions []domain.Suggestion `json:"predictions"`
	}](t, rec)
	assert.Equal(t, "OK", full.Status)
	assert.Len(t, full.Predictions, 5)
}

func TestAllReady(t *testing.T) {
	ok := httpadapter.ReadinessFunc(func(context.Context) error { return nil })
	bad := httpadapter.ReadinessFunc(func(context.Context) error { return errors.New("redis down") })

	require.NoError(t, httpadapter.AllReady(ok, nil).CheckReadiness(context.Background()))
	err := httpadapter.AllReady(ok, bad).CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}
