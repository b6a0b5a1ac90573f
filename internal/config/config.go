package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Forecast run settings.
	ForecastHorizonHours    int
	ForecastStepHours       int
	ForecastMaxHorizonHours int
	ForecastSeed            uint64
	ForecastPerturbation    bool
	PriorLookbackHours      int
	ForecastModel           string // "steering" or "linear"
	CoastalRegionsFile      string // empty uses the built-in regions

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	MapboxRateLimit float64 // requests per second, 0 disables limiting
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseIntInRange("BATCH_SIZE", 50, 1, maxBatchSize)
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	forecast, err := loadForecast()
	if err != nil {
		return nil, err
	}

	mapboxRateLimit, err := parseRateLimit()
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "storm-observations"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "storm-forecasts"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "storm-forecast"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		ForecastHorizonHours:    forecast.horizon,
		ForecastStepHours:       forecast.step,
		ForecastMaxHorizonHours: forecast.maxHorizon,
		ForecastSeed:            forecast.seed,
		ForecastPerturbation:    forecast.perturbation,
		PriorLookbackHours:      forecast.lookback,
		ForecastModel:           forecast.model,
		CoastalRegionsFile:      os.Getenv("COASTAL_REGIONS_FILE"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		MapboxRateLimit: mapboxRateLimit,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

var forecastModels = []string{"steering", "linear"}

type forecastSettings struct {
	horizon, step, maxHorizon, lookback int
	seed                                uint64
	perturbation                        bool
	model                               string
}

func loadForecast() (forecastSettings, error) {
	var (
		s   forecastSettings
		err error
	)
	if s.maxHorizon, err = parseIntInRange("FORECAST_MAX_HORIZON_HOURS", 240, 1, 24*30); err != nil {
		return s, err
	}
	if s.step, err = parseIntInRange("FORECAST_STEP_HOURS", 6, 1, 24); err != nil {
		return s, err
	}
	if s.horizon, err = parseIntInRange("FORECAST_HORIZON_HOURS", 72, s.step, s.maxHorizon); err != nil {
		return s, err
	}
	if s.lookback, err = parseIntInRange("FORECAST_PRIOR_LOOKBACK_HOURS", 0, 0, s.maxHorizon); err != nil {
		return s, err
	}
	if s.perturbation, err = parseBool("FORECAST_PERTURBATION", true); err != nil {
		return s, err
	}

	s.model = envOrDefault("FORECAST_MODEL", "steering")
	if !slices.Contains(forecastModels, s.model) {
		return s, fmt.Errorf("invalid FORECAST_MODEL: must be one of %s", strings.Join(forecastModels, ", "))
	}

	s.seed = 42
	if v := os.Getenv("FORECAST_SEED"); v != "" {
		if s.seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return s, fmt.Errorf("invalid FORECAST_SEED: %w", err)
		}
	}
	return s, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func parseRateLimit() (float64, error) {
	s := os.Getenv("MAPBOX_RATE_LIMIT")
	if s == "" {
		return 10, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 0 {
		return 0, errors.New("invalid MAPBOX_RATE_LIMIT")
	}
	return r, nil
}
