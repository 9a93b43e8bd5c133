package api

import (
	"fleet-route-service/internal/api/handlers"
	"fleet-route-service/internal/platform/metrics"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// matrix and runs may be nil.
func NewRouter(engine services.Config, matrix ports.MatrixProvider, runs ports.RunRepository) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{
		Engine: engine,
		Matrix: matrix,
		Runs:   runs,
	}

	mux.HandleFunc("/health", optimizeHandler.Health)
	mux.HandleFunc("/algorithms", handlers.Algorithms)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/runs/{id}", optimizeHandler.GetRun)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux)
}
