package services

import (
	"fleet-route-service/internal/domain"
	"fmt"
	"math/rand"
)

// ljubljanaInput is three small orders around the default depot and two
// vehicles that can each carry all of them.
func ljubljanaInput() Input {
	return Input{
		Orders: []domain.Order{
			domain.NewOrder("O1", 46.0600, 14.5100, 15.5, "express", "10:00"),
			domain.NewOrder("O2", 46.0500, 14.5000, 8.2, "standard", ""),
			domain.NewOrder("O3", 46.0650, 14.4950, 22.1, "urgent", "09:30"),
		},
		Vehicles: []domain.Vehicle{
			domain.NewVehicle("T1", "truck", 100, "diesel"),
			domain.NewVehicle("V1", "van", 50, "electric"),
		},
	}
}

// cityInput scatters n orders up to ~25 km from the depot and a mixed fleet
// where bikes cannot reach the outer ring.
func cityInput(n int, seed int64) Input {
	rng := rand.New(rand.NewSource(seed))
	depot := DefaultConfig().Depot
	priorities := []string{"express", "urgent", "standard", ""}
	windows := []string{"08:30", "09:15", "10:00", "11:45", "", "bogus"}

	in := Input{
		Vehicles: []domain.Vehicle{
			domain.NewVehicle("B1", "bike", 30, "electric"),
			domain.NewVehicle("B2", "bike", 25, ""),
			domain.NewVehicle("V1", "van", 80, "electric"),
			domain.NewVehicle("T1", "truck", 200, "diesel"),
		},
	}
	for i := 0; i < n; i++ {
		in.Orders = append(in.Orders, domain.NewOrder(
			fmt.Sprintf("O%02d", i),
			depot.Lat+(rng.Float64()-0.5)*0.35,
			depot.Lng+(rng.Float64()-0.5)*0.45,
			1+rng.Float64()*19,
			priorities[rng.Intn(len(priorities))],
			windows[rng.Intn(len(windows))],
		))
	}
	return in
}
