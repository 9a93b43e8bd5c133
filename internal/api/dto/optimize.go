package dto

import (
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
)

type OptimizeRequest struct {
	Orders   []domain.Order   `json:"orders"`
	Vehicles []domain.Vehicle `json:"vehicles"`
	// Algorithm names to run; empty runs all of them.
	Algorithms []string `json:"algorithms"`
	// Precomputed matrix, depot first then orders.
	Matrix *domain.Matrix `json:"matrix"`
	// Build the matrix from the road network instead of great-circle estimates.
	RoadDistances bool `json:"roadDistances"`
}

type AlgorithmResponse struct {
	Algorithm   string         `json:"algorithm"`
	Description string         `json:"description"`
	ElapsedMs   int64          `json:"elapsedMs"`
	Routes      []domain.Route `json:"routes"`
	Unassigned  []string       `json:"unassigned"`
	Stats       services.Stats `json:"stats"`
}

type OptimizeResponse struct {
	RunID         string              `json:"runId"`
	Persisted     bool                `json:"persisted"`
	TotalOrders   int                 `json:"totalOrders"`
	TotalVehicles int                 `json:"totalVehicles"`
	RoadDistances bool                `json:"roadDistances"`
	Results       []AlgorithmResponse `json:"results"`
}

type AlgorithmInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListAlgorithmsResponse struct {
	Algorithms []AlgorithmInfo `json:"algorithms"`
}
