package domain

import (
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("run not found")

// Persisted outcome of one optimization request: every algorithm that ran
// on the same orders and fleet.
type Run struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"createdAt"`
	TotalOrders   int         `json:"totalOrders"`
	TotalVehicles int         `json:"totalVehicles"`
	RoadDistances bool        `json:"roadDistances"`
	Results       []RunResult `json:"results"`
}

// Summary of a single algorithm inside a Run.
type RunResult struct {
	Algorithm        string  `json:"algorithm"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalDistanceKm  float64 `json:"totalDistance"`
	AssignedOrders   int     `json:"assignedOrders"`
	UnassignedOrders int     `json:"unassignedOrders"`
	VehiclesUsed     int     `json:"vehiclesUsed"`
	OnTimeDeliveries int     `json:"onTimeDeliveries"`
	LateDeliveries   int     `json:"lateDeliveries"`
	AvgUtilization   float64 `json:"avgUtilization"`
	Routes           []Route `json:"routes"`
}
