package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ERESTAURANT_DATABASE__HOST", "localhost")
	t.Setenv("ERESTAURANT_DATABASE__USER", "restaurant")
	t.Setenv("ERESTAURANT_DATABASE__PASSWORD", "secret")
	t.Setenv("ERESTAURANT_DATABASE__NAME", "erestaurant")
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ERESTAURANT_PRIMARY__ENV", "primary.env"},
		{"ERESTAURANT_DATABASE__MAX_OPEN_CONNS", "database.max_open_conns"},
		{"ERESTAURANT_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "observability.logging.slow_query_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Database.AcquireTimeout)
	assert.False(t, cfg.Seating.StrictOccupancy)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ERESTAURANT_PRIMARY__ENV", "production")
	t.Setenv("ERESTAURANT_DATABASE__PORT", "6543")
	t.Setenv("ERESTAURANT_SEATING__STRICT_OCCUPANCY", "true")
	t.Setenv("ERESTAURANT_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("ERESTAURANT_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Seating.StrictOccupancy)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, []string{"database"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("ERESTAURANT_DATABASE__HOST", "localhost")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigRejectsUnknownEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ERESTAURANT_PRIMARY__ENV", "qa")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{"defaults", func(c *ObservabilityConfig) {}, false},
		{"badLevel", func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, true},
		{"badFormat", func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, true},
		{"negativeThreshold", func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, true},
		{"shortHealthTimeout", func(c *ObservabilityConfig) { c.HealthChecks.Timeout = time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "error"
	assert.Equal(t, "error", c.GetLogLevel())
}
