package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker   = "localhost:9092"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "recommendation-requests", cfg.KafkaRequestTopic)
	assert.Equal(t, "recommendation-results", cfg.KafkaResultTopic)
	assert.Equal(t, "plant-advisor", cfg.KafkaGroupID)
	assert.False(t, cfg.PipelineEnabled)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)

	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
	assert.Equal(t, 24*time.Hour, cfg.GeocodeCacheTTL)

	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	assert.Empty(t, cfg.GoogleMapsAPIKey)
	assert.Equal(t, 25000, cfg.PlacesRadiusMeters)

	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.RecommendationCacheTTL)
	assert.Empty(t, cfg.DatabasePath)
	assert.Equal(t, 8, cfg.RecommendationLimit)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REQUEST_TOPIC", "custom-requests")
	t.Setenv("KAFKA_RESULT_TOPIC", "custom-results")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("PIPELINE_ENABLED", "true")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")
	t.Setenv("GEOCODE_CACHE_TTL", "2h")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("GOOGLE_MAPS_API_KEY", "gm-key")
	t.Setenv("PLACES_RADIUS_METERS", "10000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RECOMMENDATION_CACHE_TTL", "15m")
	t.Setenv("DATABASE_PATH", "/tmp/advisor.db")
	t.Setenv("RECOMMENDATION_LIMIT", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-requests", cfg.KafkaRequestTopic)
	assert.Equal(t, "custom-results", cfg.KafkaResultTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.True(t, cfg.PipelineEnabled)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
	assert.Equal(t, 2*time.Hour, cfg.GeocodeCacheTTL)
	assert.Equal(t, "ow-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, 3*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, "gm-key", cfg.GoogleMapsAPIKey)
	assert.Equal(t, 10000, cfg.PlacesRadiusMeters)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "secret", cfg.RedisPassword)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.RecommendationCacheTTL)
	assert.Equal(t, "/tmp/advisor.db", cfg.DatabasePath)
	assert.Equal(t, 12, cfg.RecommendationLimit)
}

func TestLoad_InvalidValuesNameTheKey(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"BATCH_SIZE", "0"},
		{"BATCH_SIZE", "9999"},
		{"BATCH_FLUSH_INTERVAL", "not-a-duration"},
		{"MAPBOX_TIMEOUT", "bad"},
		{"GEOCODE_CACHE_TTL", "0s"},
		{"WEATHER_TIMEOUT", "soon"},
		{"RECOMMENDATION_CACHE_TTL", "-5m"},
		{"PLACES_RADIUS_METERS", "999999"},
		{"REDIS_DB", "-1"},
		{"RECOMMENDATION_LIMIT", "lots"},
		{"PIPELINE_ENABLED", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxTokenImpliesEnabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MapboxEnabled)
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_DemoKeysAreIgnored(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "demo_key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "demo_key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Empty(t, cfg.GoogleMapsAPIKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_ADDR=:7070\nLOG_LEVEL=warn\n"), 0o600))
	t.Chdir(dir)
	// Values from the real environment take precedence over the file.
	t.Setenv("LOG_LEVEL", "error")
	// godotenv sets variables process-wide; restore HTTP_ADDR after the test.
	t.Setenv("HTTP_ADDR", "")
	require.NoError(t, os.Unsetenv("HTTP_ADDR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "error", cfg.LogLevel)
}
