package domain

import "strings"

// Vehicle class. The class determines the hard range limit from the depot.
type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

const FuelElectric = "electric"

// Delivery vehicle available to the planner. Immutable during a run.
type Vehicle struct {
	ID            string      `json:"id"`
	Type          VehicleType `json:"type"`
	MaxCapacityKg float64     `json:"maxCapacity"`
	FuelType      string      `json:"fuelType"`
}

func NewVehicle(id string, vehicleType string, maxCapacityKg float64, fuelType string) Vehicle {
	v := Vehicle{
		ID:            id,
		Type:          VehicleType(vehicleType),
		MaxCapacityKg: maxCapacityKg,
		FuelType:      fuelType,
	}
	return v.Normalize()
}

// Normalize lowercases type and fuel and clamps a negative capacity to zero.
// An empty fuel type is treated as non-electric.
func (v Vehicle) Normalize() Vehicle {
	v.ID = strings.TrimSpace(v.ID)
	v.Type = VehicleType(strings.ToLower(strings.TrimSpace(string(v.Type))))
	v.FuelType = strings.ToLower(strings.TrimSpace(v.FuelType))
	if v.MaxCapacityKg < 0 {
		v.MaxCapacityKg = 0
	}
	return v
}

func (v Vehicle) IsElectric() bool { return v.FuelType == FuelElectric }
