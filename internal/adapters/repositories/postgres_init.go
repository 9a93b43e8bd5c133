package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fleet-route-service/internal/domain"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS optimization_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		total_orders INTEGER NOT NULL,
		total_vehicles INTEGER NOT NULL,
		road_distances BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS algorithm_results (
		run_id UUID NOT NULL REFERENCES optimization_runs(id) ON DELETE CASCADE,
		algorithm TEXT NOT NULL,
		elapsed_ms BIGINT NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		assigned_orders INTEGER NOT NULL,
		unassigned_orders INTEGER NOT NULL,
		vehicles_used INTEGER NOT NULL,
		on_time_deliveries INTEGER NOT NULL,
		late_deliveries INTEGER NOT NULL,
		avg_utilization DOUBLE PRECISION NOT NULL,
		routes JSONB NOT NULL,
		PRIMARY KEY (run_id, algorithm)
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at
	ON optimization_runs(created_at DESC);
	`

	statements := []string{
		createRunsQuery,
		createResultsQuery,
		createLegCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Scenario is an orders + fleet fixture read from JSON.
type Scenario struct {
	Orders   []domain.Order   `json:"orders"`
	Vehicles []domain.Vehicle `json:"vehicles"`
}

// Read and validate a scenario from a JSON file. Defaults are applied to
// every order and vehicle.
func LoadScenarioJSON(jsonPath string) (*Scenario, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load scenario: read %q: %w", jsonPath, err)
	}

	var data Scenario
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load scenario: parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Orders))
	for i, o := range data.Orders {
		o = o.Normalize()
		if o.ID == "" {
			return nil, fmt.Errorf("load scenario: order at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[o.ID]; ok {
			return nil, fmt.Errorf("load scenario: order at index %d: duplicate id %q", i+1, o.ID)
		}
		seen[o.ID] = struct{}{}
		data.Orders[i] = o
	}

	for i, v := range data.Vehicles {
		v = v.Normalize()
		if strings.TrimSpace(v.ID) == "" {
			return nil, fmt.Errorf("load scenario: vehicle at index %d: id cannot be empty", i+1)
		}
		data.Vehicles[i] = v
	}

	return &data, nil
}
