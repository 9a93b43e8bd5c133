package domain

// Represents a single delivery in a planned route.
// A Stop carries a copy of the order plus the timing computed when the route
// was simulated. ArrivalMinutes counts from midnight and already includes the
// service time at the stop.
type Stop struct {
	Order           Order   `json:"order"`
	LegKm           float64 `json:"legKm"`
	ArrivalMinutes  float64 `json:"arrivalMinutes"`
	OnTime          bool    `json:"onTime"`
	LatenessMinutes float64 `json:"latenessMinutes"`
}

// Represents one depot-to-depot trip of a single vehicle.
// A Route is the output of a routing algorithm: the ordered stop sequence and
// aggregate metrics. TotalDistanceKm includes the return leg and is rounded to
// one decimal. TripNumber is 1 unless the algorithm plans several trips for
// the same vehicle.
type Route struct {
	Vehicle              Vehicle `json:"vehicle"`
	Stops                []Stop  `json:"stops"`
	TotalWeightKg        float64 `json:"totalWeight"`
	TotalDistanceKm      float64 `json:"totalDistance"`
	DurationMinutes      float64 `json:"durationMinutes"`
	OnTimeDeliveries     int     `json:"onTimeDeliveries"`
	LateDeliveries       int     `json:"lateDeliveries"`
	TotalLatenessMinutes float64 `json:"totalLateness"`
	TripNumber           int     `json:"tripNumber"`
	Color                string  `json:"color"`
}

// OrderIDs lists the route's orders in visit sequence.
func (r Route) OrderIDs() []string {
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		ids = append(ids, s.Order.ID)
	}
	return ids
}

// Utilization is the loaded weight as a fraction of capacity (0 when the
// vehicle has no capacity).
func (r Route) Utilization() float64 {
	if r.Vehicle.MaxCapacityKg <= 0 {
		return 0
	}
	return r.TotalWeightKg / r.Vehicle.MaxCapacityKg
}
