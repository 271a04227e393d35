package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"INSURANCE_ADDR", "DATABASE_URL", "DATABASE_DRIVER", "FEATURE_FLAGS_SOURCE", "VEHICLE_SERVICE_TIMEOUT", "ENRICH_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.Vehicle.Timeout)
	assert.Equal(t, FlagSourceStatic, cfg.FeatureFlags.Source)
	assert.Equal(t, 4, cfg.EnrichConcurrency)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("INSURANCE_ADDR", ":9090")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("VEHICLE_SERVICE_URL", "http://vehicles.internal")
	t.Setenv("VEHICLE_SERVICE_PATH", "/v2/vehicles/")
	t.Setenv("VEHICLE_SERVICE_TIMEOUT", "750ms")
	t.Setenv("VEHICLE_SERVICE_RPS", "12.5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "http://vehicles.internal", cfg.Vehicle.BaseURL)
	assert.Equal(t, "/v2/vehicles/", cfg.Vehicle.Path)
	assert.Equal(t, 750*time.Millisecond, cfg.Vehicle.Timeout)
	assert.InDelta(t, 12.5, cfg.Vehicle.RatePerSecond, 0.0001)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("VEHICLE_SERVICE_TIMEOUT", "soon")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VEHICLE_SERVICE_TIMEOUT")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "mysql")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("redis flags without redis url", func(t *testing.T) {
		t.Setenv("FEATURE_FLAGS_SOURCE", FlagSourceRedis)
		t.Setenv("REDIS_URL", "")
		_, err := FromEnv()
		require.Error(t, err)
	})
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("VEHICLE_SERVICE_USERNAME=svc-user\n"), 0o600))
	t.Setenv("VEHICLE_SERVICE_USERNAME", "")
	require.NoError(t, os.Unsetenv("VEHICLE_SERVICE_USERNAME"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "svc-user", cfg.Vehicle.Username)
}
