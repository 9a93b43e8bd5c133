package config

import (
	"fleet-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Setenv("FLEET_TEST_KEY", "  value ")
	assert.Equal(t, "value", Get("FLEET_TEST_KEY", "fallback"))

	t.Setenv("FLEET_TEST_KEY", "   ")
	assert.Equal(t, "fallback", Get("FLEET_TEST_KEY", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "OSRM_URL", "OSRM_RPS", "LEG_CACHE_TTL", "ENGINE_CONFIG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5.0, cfg.OSRMRPS)
	assert.Equal(t, 168*time.Hour, cfg.LegCacheTTL)
	assert.Equal(t, "driving", cfg.OSRMProfile)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadRejectsBadRate(t *testing.T) {
	t.Setenv("OSRM_RPS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEngineOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	yml := `
shift_start: "06:00"
service_minutes: 3
range_limits_km:
  bike: 10
genetic:
  generations: 5
  seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadEngine(path)
	require.NoError(t, err)

	assert.Equal(t, "06:00", cfg.ShiftStart)
	assert.Equal(t, 3.0, cfg.ServiceMinutes)
	assert.Equal(t, 10.0, cfg.RangeLimit(domain.VehicleBike))
	assert.Equal(t, 50.0, cfg.RangeLimit(domain.VehicleVan), "unlisted types keep their defaults")
	assert.Equal(t, 5, cfg.Genetic.Generations)
	assert.Equal(t, 30, cfg.Genetic.PopulationSize)
	assert.Equal(t, int64(7), cfg.Genetic.Seed)
	assert.Equal(t, 40.0, cfg.AverageSpeedKmh)
}

func TestLoadEngineRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("average_speed_kmh: 0\n"), 0o600))

	_, err := LoadEngine(path)
	assert.Error(t, err)

	_, err = LoadEngine(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEngineDefaults(t *testing.T) {
	cfg, err := LoadEngine("")
	require.NoError(t, err)
	assert.Equal(t, "08:00", cfg.ShiftStart)
}
