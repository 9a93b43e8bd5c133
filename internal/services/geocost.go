package services

import "math"

const (
	earthRadiusKm = 6371.0
	// RoadFactor approximates road distance from straight-line distance.
	RoadFactor = 1.3
)

// Distance returns the haversine great-circle distance in km, multiplied by
// RoadFactor when applyRoadFactor is set. Inputs are not range-checked.
func Distance(lat1, lng1, lat2, lng2 float64, applyRoadFactor bool) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	d := earthRadiusKm * c
	if applyRoadFactor {
		d *= RoadFactor
	}
	return d
}
