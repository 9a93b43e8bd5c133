package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when it is unset
// or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// AppConfig is the process-level configuration read from the environment.
type AppConfig struct {
	Port string
	// Postgres DSN. Empty disables run persistence and the SQL leg cache.
	DatabaseURL string
	// Redis URL. When set, legs are cached in Redis instead of Postgres.
	RedisURL    string
	LegCacheTTL time.Duration
	// OSRM base URL. Empty disables road-distance matrices.
	OSRMURL     string
	OSRMProfile string
	// Requests per second allowed against OSRM.
	OSRMRPS float64
	// Optional YAML file with engine tunables.
	EngineConfigPath string
}

// Load reads AppConfig from the environment, applying defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:             Get("PORT", "8080"),
		DatabaseURL:      Get("DATABASE_URL", ""),
		RedisURL:         Get("REDIS_URL", ""),
		OSRMURL:          strings.TrimRight(Get("OSRM_URL", ""), "/"),
		OSRMProfile:      Get("OSRM_PROFILE", "driving"),
		EngineConfigPath: Get("ENGINE_CONFIG", ""),
	}

	rps, err := strconv.ParseFloat(Get("OSRM_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return AppConfig{}, fmt.Errorf("load config: OSRM_RPS must be a positive number, got %q", os.Getenv("OSRM_RPS"))
	}
	cfg.OSRMRPS = rps

	ttl, err := time.ParseDuration(Get("LEG_CACHE_TTL", "168h"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("load config: LEG_CACHE_TTL: %w", err)
	}
	cfg.LegCacheTTL = ttl

	return cfg, nil
}
