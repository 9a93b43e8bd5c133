package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/metrics"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/services"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Upper bound on a request body; a few thousand orders fit comfortably.
const maxBodyBytes = 8 << 20

type OptimizeHandler struct {
	Engine services.Config
	// Optional; enables roadDistances requests.
	Matrix ports.MatrixProvider
	// Optional; enables run persistence and GET /runs/{id}.
	Runs ports.RunRepository
}

// Optimize runs the requested algorithms side by side on one order set.
// It coordinates matrix resolution, the parallel comparison and persistence.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Orders) == 0 || len(req.Vehicles) == 0 {
		writeError(w, r, http.StatusBadRequest, "orders and vehicles are required")
		return
	}

	names := make([]services.AlgorithmName, 0, len(req.Algorithms))
	for _, n := range req.Algorithms {
		name := services.AlgorithmName(n)
		if _, err := services.Lookup(name); err != nil {
			writeError(w, r, http.StatusBadRequest, "unknown algorithm: "+n)
			return
		}
		names = append(names, name)
	}

	in := services.Input{Orders: req.Orders, Vehicles: req.Vehicles, Matrix: req.Matrix}

	if req.RoadDistances {
		if req.Matrix != nil {
			writeError(w, r, http.StatusBadRequest, "matrix and roadDistances are mutually exclusive")
			return
		}
		if h.Matrix == nil {
			writeError(w, r, http.StatusBadRequest, "road distances are not configured")
			return
		}

		points := make([]domain.Coordinates, 0, 1+len(req.Orders))
		points = append(points, h.Engine.Depot)
		for _, o := range req.Orders {
			points = append(points, o.Location)
		}

		m, err := h.Matrix.BuildMatrix(r.Context(), points)
		if err != nil {
			log.Printf("build matrix failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "road distance lookup failed")
			return
		}
		in.Matrix = m
	}

	results, err := h.compare(r.Context(), in, names)
	switch {
	case errors.Is(err, domain.ErrMatrixShape),
		errors.Is(err, services.ErrNoOrders),
		errors.Is(err, services.ErrNoVehicles):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Printf("compare algorithms failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	run := domain.Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		TotalOrders:   len(req.Orders),
		TotalVehicles: len(req.Vehicles),
		RoadDistances: req.RoadDistances,
	}
	res := dto.OptimizeResponse{
		RunID:         run.ID,
		TotalOrders:   run.TotalOrders,
		TotalVehicles: run.TotalVehicles,
		RoadDistances: run.RoadDistances,
		Results:       make([]dto.AlgorithmResponse, 0, len(results)),
	}

	for _, result := range results {
		name := string(result.Algorithm)
		metrics.OrdersAssigned.WithLabelValues(name).Add(float64(result.Stats.AssignedOrders))
		metrics.OrdersUnassigned.WithLabelValues(name).Add(float64(result.Stats.UnassignedOrders))

		res.Results = append(res.Results, dto.AlgorithmResponse{
			Algorithm:   name,
			Description: services.Describe(result.Algorithm),
			ElapsedMs:   result.Elapsed.Milliseconds(),
			Routes:      nonNilRoutes(result.Routes),
			Unassigned:  result.Unassigned,
			Stats:       result.Stats,
		})
		run.Results = append(run.Results, domain.RunResult{
			Algorithm:        name,
			ElapsedMs:        result.Elapsed.Milliseconds(),
			TotalDistanceKm:  result.Stats.TotalDistanceKm,
			AssignedOrders:   result.Stats.AssignedOrders,
			UnassignedOrders: result.Stats.UnassignedOrders,
			VehiclesUsed:     result.Stats.VehiclesUsed,
			OnTimeDeliveries: result.Stats.OnTimeDeliveries,
			LateDeliveries:   result.Stats.LateDeliveries,
			AvgUtilization:   result.Stats.AvgUtilization,
			Routes:           nonNilRoutes(result.Routes),
		})
	}

	// A failed save does not invalidate the computed routes.
	if h.Runs != nil {
		if err := h.Runs.SaveRun(r.Context(), run); err != nil {
			log.Printf("save run failed: run_id=%s err=%v", run.ID, err)
		} else {
			res.Persisted = true
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *OptimizeHandler) compare(ctx context.Context, in services.Input, names []services.AlgorithmName) (_ []services.Result, err error) {
	defer obs.Time(ctx, "optimize.Compare")(&err)
	return services.Compare(ctx, in, h.Engine, names...)
}

// GetRun returns a stored comparison by id.
func (h *OptimizeHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Runs == nil {
		writeError(w, r, http.StatusNotFound, "run storage is not configured")
		return
	}

	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := h.Runs.GetRun(r.Context(), id)
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: run_id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, run)
}

func nonNilRoutes(routes []domain.Route) []domain.Route {
	if routes == nil {
		return []domain.Route{}
	}
	return routes
}
