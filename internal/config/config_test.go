package config

import (
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

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "storm-observations", cfg.KafkaSourceTopic)
	assert.Equal(t, "storm-forecasts", cfg.KafkaSinkTopic)
	assert.Equal(t, "storm-forecast", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
	assert.Equal(t, 10.0, cfg.MapboxRateLimit)
	assert.Equal(t, 72, cfg.ForecastHorizonHours)
	assert.Equal(t, 6, cfg.ForecastStepHours)
	assert.Equal(t, 240, cfg.ForecastMaxHorizonHours)
	assert.Equal(t, uint64(42), cfg.ForecastSeed)
	assert.True(t, cfg.ForecastPerturbation)
	assert.Zero(t, cfg.PriorLookbackHours)
	assert.Equal(t, "steering", cfg.ForecastModel)
	assert.Empty(t, cfg.CoastalRegionsFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")
	t.Setenv("MAPBOX_RATE_LIMIT", "2.5")
	t.Setenv("FORECAST_HORIZON_HOURS", "120")
	t.Setenv("FORECAST_STEP_HOURS", "3")
	t.Setenv("FORECAST_MAX_HORIZON_HOURS", "168")
	t.Setenv("FORECAST_SEED", "7")
	t.Setenv("FORECAST_PERTURBATION", "false")
	t.Setenv("FORECAST_PRIOR_LOOKBACK_HOURS", "24")
	t.Setenv("FORECAST_MODEL", "linear")
	t.Setenv("COASTAL_REGIONS_FILE", "/etc/forecast/regions.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
	assert.Equal(t, 2.5, cfg.MapboxRateLimit)
	assert.Equal(t, 120, cfg.ForecastHorizonHours)
	assert.Equal(t, 3, cfg.ForecastStepHours)
	assert.Equal(t, 168, cfg.ForecastMaxHorizonHours)
	assert.Equal(t, uint64(7), cfg.ForecastSeed)
	assert.False(t, cfg.ForecastPerturbation)
	assert.Equal(t, 24, cfg.PriorLookbackHours)
	assert.Equal(t, "linear", cfg.ForecastModel)
	assert.Equal(t, "/etc/forecast/regions.yaml", cfg.CoastalRegionsFile)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
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

func TestLoad_InvalidForecastSettings(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FORECAST_HORIZON_HOURS", "0"},
		{"FORECAST_HORIZON_HOURS", "500"},
		{"FORECAST_HORIZON_HOURS", "seventy-two"},
		{"FORECAST_STEP_HOURS", "-6"},
		{"FORECAST_MAX_HORIZON_HOURS", "0"},
		{"FORECAST_SEED", "-1"},
		{"FORECAST_PERTURBATION", "sometimes"},
		{"FORECAST_PRIOR_LOOKBACK_HOURS", "-12"},
		{"FORECAST_MODEL", "neural"},
		{"MAPBOX_RATE_LIMIT", "fast"},
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

func TestLoad_HorizonBoundedByStep(t *testing.T) {
	t.Setenv("FORECAST_STEP_HOURS", "12")
	t.Setenv("FORECAST_HORIZON_HOURS", "6")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORECAST_HORIZON_HOURS")
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, parseBrokers(" a:9092 , ,b:9092"))
	assert.Empty(t, parseBrokers(""))
}
