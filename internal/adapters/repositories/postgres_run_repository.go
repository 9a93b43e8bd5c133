package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/obs"
	"fmt"
)

// Postgres-backed implementation of the RunRepository port.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

// Store a run and all of its algorithm results in one transaction.
func (s *PostgresRunRepository) SaveRun(ctx context.Context, run domain.Run) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("postgres run repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO optimization_runs (id, created_at, total_orders, total_vehicles, road_distances)
	VALUES ($1, $2, $3, $4, $5);
	`, run.ID, run.CreatedAt, run.TotalOrders, run.TotalVehicles, run.RoadDistances)
	if err != nil {
		return fmt.Errorf("save run: insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO algorithm_results (
		run_id, algorithm, elapsed_ms, total_distance_km,
		assigned_orders, unassigned_orders, vehicles_used,
		on_time_deliveries, late_deliveries, avg_utilization, routes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`)
	if err != nil {
		return fmt.Errorf("save run: prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range run.Results {
		routes, err := json.Marshal(r.Routes)
		if err != nil {
			return fmt.Errorf("save run: marshal %s routes: %w", r.Algorithm, err)
		}

		_, err = stmt.ExecContext(ctx,
			run.ID, r.Algorithm, r.ElapsedMs, r.TotalDistanceKm,
			r.AssignedOrders, r.UnassignedOrders, r.VehiclesUsed,
			r.OnTimeDeliveries, r.LateDeliveries, r.AvgUtilization, routes,
		)
		if err != nil {
			return fmt.Errorf("save run: insert %s result: %w", r.Algorithm, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit tx: %w", err)
	}

	return nil
}

// Return a stored run with its results ordered by algorithm name.
func (s *PostgresRunRepository) GetRun(ctx context.Context, id string) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "runs.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres run repository: DB is nil")
	}

	run := domain.Run{ID: id}
	err = s.DB.QueryRowContext(ctx, `
	SELECT created_at, total_orders, total_vehicles, road_distances
	FROM optimization_runs
	WHERE id = $1;
	`, id).Scan(&run.CreatedAt, &run.TotalOrders, &run.TotalVehicles, &run.RoadDistances)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: query run: %w", id, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		algorithm, elapsed_ms, total_distance_km,
		assigned_orders, unassigned_orders, vehicles_used,
		on_time_deliveries, late_deliveries, avg_utilization, routes
	FROM algorithm_results
	WHERE run_id = $1
	ORDER BY algorithm;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: query results: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.RunResult
		var routes []byte
		err := rows.Scan(
			&r.Algorithm, &r.ElapsedMs, &r.TotalDistanceKm,
			&r.AssignedOrders, &r.UnassignedOrders, &r.VehiclesUsed,
			&r.OnTimeDeliveries, &r.LateDeliveries, &r.AvgUtilization, &routes,
		)
		if err != nil {
			return nil, fmt.Errorf("get run %s: scan row: %w", id, err)
		}
		if err := json.Unmarshal(routes, &r.Routes); err != nil {
			return nil, fmt.Errorf("get run %s: decode %s routes: %w", id, r.Algorithm, err)
		}
		run.Results = append(run.Results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run %s: row iteration: %w", id, err)
	}

	return &run, nil
}
