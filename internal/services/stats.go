package services

import "fleet-route-service/internal/domain"

// Stats summarizes one algorithm's routes for side-by-side comparison.
type Stats struct {
	TotalDistanceKm  float64 `json:"totalDistance"`
	AvgDistanceKm    float64 `json:"avgDistance"`
	AssignedOrders   int     `json:"assignedOrders"`
	UnassignedOrders int     `json:"unassignedOrders"`
	VehiclesUsed     int     `json:"vehiclesUsed"`
	OnTimeDeliveries int     `json:"onTimeDeliveries"`
	LateDeliveries   int     `json:"lateDeliveries"`
	TotalLateness    float64 `json:"totalLateness"`
	// Averaged over late deliveries only.
	AvgLateness float64 `json:"avgLateness"`
	// Percent of the used vehicles' combined capacity.
	AvgUtilization float64 `json:"avgUtilization"`
}

// AggregateStats computes comparison statistics. Every ratio with a zero
// denominator is reported as 0.
func AggregateStats(routes []domain.Route, totalOrders int) Stats {
	var (
		s                     Stats
		distance, lateness    float64
		totalWeight, capacity float64
	)

	for _, r := range routes {
		distance += r.TotalDistanceKm
		s.AssignedOrders += len(r.Stops)
		s.OnTimeDeliveries += r.OnTimeDeliveries
		s.LateDeliveries += r.LateDeliveries
		lateness += r.TotalLatenessMinutes
		totalWeight += r.TotalWeightKg
		capacity += r.Vehicle.MaxCapacityKg
	}

	s.VehiclesUsed = len(routes)
	s.UnassignedOrders = totalOrders - s.AssignedOrders
	s.TotalDistanceKm = round1(distance)
	s.TotalLateness = round1(lateness)

	if len(routes) > 0 {
		s.AvgDistanceKm = round1(distance / float64(len(routes)))
	}
	if s.LateDeliveries > 0 {
		s.AvgLateness = round1(lateness / float64(s.LateDeliveries))
	}
	if capacity > 0 {
		s.AvgUtilization = round1(totalWeight / capacity * 100)
	}

	return s
}
