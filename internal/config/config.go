package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// demoKey is the placeholder API key shipped in sample env files. It is
// treated as unset.
const demoKey = "demo_key"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	KafkaBrokers       []string
	KafkaRequestTopic  string
	KafkaResultTopic   string
	KafkaGroupID       string
	PipelineEnabled    bool
	BatchSize          int
	BatchFlushInterval time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	GeocodeCacheTTL time.Duration

	// Weather and places providers. Empty keys select the built-in fallbacks.
	OpenWeatherAPIKey  string
	WeatherTimeout     time.Duration
	GoogleMapsAPIKey   string
	PlacesRadiusMeters int

	// Recommendation cache. Empty RedisAddr disables it.
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	RecommendationCacheTTL time.Duration

	// Saved locations. Empty DatabasePath disables the store.
	DatabasePath string

	RecommendationLimit int
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaRequestTopic:  sharedcfg.EnvOrDefault("KAFKA_REQUEST_TOPIC", "recommendation-requests"),
		KafkaResultTopic:   sharedcfg.EnvOrDefault("KAFKA_RESULT_TOPIC", "recommendation-results"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "plant-advisor"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxCacheSize: parseMapboxCacheSize(),

		OpenWeatherAPIKey: apiKey("OPENWEATHER_API_KEY"),
		GoogleMapsAPIKey:  apiKey("GOOGLE_MAPS_API_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg.PipelineEnabled, err = parseBool("PIPELINE_ENABLED", false)
	collect(err)
	cfg.MapboxTimeout, err = parseDuration("MAPBOX_TIMEOUT", 5*time.Second)
	collect(err)
	cfg.GeocodeCacheTTL, err = parseDuration("GEOCODE_CACHE_TTL", 24*time.Hour)
	collect(err)
	cfg.WeatherTimeout, err = parseDuration("WEATHER_TIMEOUT", 5*time.Second)
	collect(err)
	cfg.RecommendationCacheTTL, err = parseDuration("RECOMMENDATION_CACHE_TTL", time.Hour)
	collect(err)
	cfg.PlacesRadiusMeters, err = parseInt("PLACES_RADIUS_METERS", 25000, 1, 50000)
	collect(err)
	cfg.RedisDB, err = parseInt("REDIS_DB", 0, 0, 15)
	collect(err)
	cfg.RecommendationLimit, err = parseInt("RECOMMENDATION_LIMIT", 8, 1, 50)
	collect(err)

	if len(cfg.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required"))
	}
	if cfg.PipelineEnabled {
		if cfg.KafkaRequestTopic == "" {
			errs = append(errs, errors.New("KAFKA_REQUEST_TOPIC is required"))
		}
		if cfg.KafkaResultTopic == "" {
			errs = append(errs, errors.New("KAFKA_RESULT_TOPIC is required"))
		}
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		errs = append(errs, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func apiKey(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == demoKey {
		return ""
	}
	return v
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: %q (want %d..%d)", key, s, lo, hi)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return b, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
