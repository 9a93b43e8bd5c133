package config

import (
	"fleet-route-service/internal/services"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadEngine returns the routing engine settings. Values from the YAML file
// at path override services.DefaultConfig; an empty path means defaults only.
// The result is validated.
func LoadEngine(path string) (services.Config, error) {
	cfg := services.DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return services.Config{}, fmt.Errorf("load engine config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return services.Config{}, fmt.Errorf("load engine config: parse %q: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return services.Config{}, fmt.Errorf("load engine config: %w", err)
	}

	return cfg, nil
}
