package services

import (
	"fleet-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-6

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Genetic.Seed = 42
	cfg.Genetic.Generations = 20
	return cfg
}

// checkRouteInvariants asserts the properties every algorithm must hold.
func checkRouteInvariants(t *testing.T, cfg Config, in Input, res Result) {
	t.Helper()

	seen := make(map[string]bool)
	stops := 0
	for _, r := range res.Routes {
		require.NotEmpty(t, r.Stops, "routes are never empty")
		assert.LessOrEqual(t, r.TotalWeightKg, r.Vehicle.MaxCapacityKg+floatTolerance,
			"vehicle %s overloaded", r.Vehicle.ID)

		limit := cfg.RangeLimit(r.Vehicle.Type)
		prev := cfg.Depot
		km := 0.0
		for _, s := range r.Stops {
			assert.False(t, seen[s.Order.ID], "order %s routed twice", s.Order.ID)
			seen[s.Order.ID] = true
			stops++

			fromDepot := Distance(cfg.Depot.Lat, cfg.Depot.Lng, s.Order.Location.Lat, s.Order.Location.Lng, false)
			assert.LessOrEqual(t, fromDepot, limit+floatTolerance,
				"order %s beyond %s range", s.Order.ID, r.Vehicle.Type)

			km += Distance(prev.Lat, prev.Lng, s.Order.Location.Lat, s.Order.Location.Lng, true)
			prev = s.Order.Location
		}
		km += Distance(prev.Lat, prev.Lng, cfg.Depot.Lat, cfg.Depot.Lng, true)
		assert.InDelta(t, round1(km), r.TotalDistanceKm, floatTolerance)
	}

	assert.Equal(t, stops, res.Assigned)
	assert.Equal(t, len(in.Orders), res.Stats.AssignedOrders+res.Stats.UnassignedOrders)
	assert.Equal(t, res.Assigned, res.Stats.AssignedOrders)
	assert.Len(t, res.Unassigned, len(in.Orders)-res.Assigned)
}

func TestAlgorithmsHoldInvariants(t *testing.T) {
	cfg := testConfig()

	for _, seed := range []int64{1, 7, 99} {
		in := cityInput(40, seed)
		for _, algo := range Algorithms() {
			t.Run(string(algo.Name()), func(t *testing.T) {
				res, err := Run(algo, in, cfg)
				require.NoError(t, err)
				checkRouteInvariants(t, cfg, in, res)
			})
		}
	}
}

func TestAlgorithmsDoNotMutateInput(t *testing.T) {
	in := cityInput(15, 3)
	in.Orders[0].Priority = ""
	in.Vehicles[0].Type = "BIKE"
	before := Input{
		Orders:   append([]domain.Order(nil), in.Orders...),
		Vehicles: append([]domain.Vehicle(nil), in.Vehicles...),
	}

	for _, algo := range Algorithms() {
		_, err := Run(algo, in, testConfig())
		require.NoError(t, err)
	}

	assert.Equal(t, before.Orders, in.Orders)
	assert.Equal(t, before.Vehicles, in.Vehicles)
}

func TestRunRejectsBadInput(t *testing.T) {
	good := ljubljanaInput()

	_, err := Run(DistanceFirst{}, Input{Vehicles: good.Vehicles}, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoOrders)

	_, err = Run(DistanceFirst{}, Input{Orders: good.Orders}, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoVehicles)

	bad := good
	bad.Matrix = &domain.Matrix{DistancesKm: [][]float64{{0, 1}, {1, 0}}}
	_, err = Run(DistanceFirst{}, bad, DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrMatrixShape)
}

func TestNoFeasibleVehicleIsNotAnError(t *testing.T) {
	in := ljubljanaInput()
	in.Vehicles = []domain.Vehicle{domain.NewVehicle("tiny", "bike", 1, "electric")}

	for _, algo := range Algorithms() {
		t.Run(string(algo.Name()), func(t *testing.T) {
			res, err := Run(algo, in, testConfig())
			require.NoError(t, err)
			assert.Empty(t, res.Routes)
			assert.Zero(t, res.Assigned)
			assert.Equal(t, 3, res.Stats.UnassignedOrders)
		})
	}
}

func TestDistanceFirstLjubljanaScenario(t *testing.T) {
	res, err := Run(DistanceFirst{}, ljubljanaInput(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Assigned)
	assert.Zero(t, res.Stats.UnassignedOrders)
	assert.GreaterOrEqual(t, len(res.Routes), 1)
	assert.LessOrEqual(t, len(res.Routes), 2)
	assert.Greater(t, res.Stats.TotalDistanceKm, 0.0)
	// The electric van is filled first.
	assert.Equal(t, "V1", res.Routes[0].Vehicle.ID)
}

func TestDistanceFirstRespectsBikeRange(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		// About 30 km north of the depot.
		Orders:   []domain.Order{domain.NewOrder("far", depot.Lat+0.27, depot.Lng, 2, "express", "")},
		Vehicles: []domain.Vehicle{domain.NewVehicle("B1", "bike", 50, "electric")},
	}

	res, err := Run(DistanceFirst{}, in, DefaultConfig())
	require.NoError(t, err)

	assert.Zero(t, res.Assigned)
	assert.Equal(t, 1, res.Stats.UnassignedOrders)
	assert.Equal(t, []string{"far"}, res.Unassigned)
}

func TestDistanceFirstVisitsNearestFirst(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		Orders: []domain.Order{
			domain.NewOrder("far", depot.Lat+0.05, depot.Lng, 1, "standard", ""),
			domain.NewOrder("near", depot.Lat+0.01, depot.Lng, 1, "standard", ""),
		},
		Vehicles: []domain.Vehicle{domain.NewVehicle("T1", "truck", 100, "diesel")},
	}

	res, err := Run(DistanceFirst{}, in, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, []string{"near", "far"}, res.Routes[0].OrderIDs())
}

func TestTimeFirstServesEarliestDeadlineFirst(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		Orders: []domain.Order{
			domain.NewOrder("noon", depot.Lat+0.01, depot.Lng, 1, "standard", "12:00"),
			domain.NewOrder("open", depot.Lat-0.01, depot.Lng, 1, "standard", ""),
			domain.NewOrder("nine", depot.Lat, depot.Lng+0.02, 1, "standard", "09:00:00"),
		},
		Vehicles: []domain.Vehicle{domain.NewVehicle("T1", "truck", 100, "diesel")},
	}

	res, err := Run(TimeFirst{}, in, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, []string{"nine", "noon", "open"}, res.Routes[0].OrderIDs())
	assert.Equal(t, 3, res.Stats.OnTimeDeliveries)
}

func TestSweepFollowsPolarAngle(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		Orders: []domain.Order{
			domain.NewOrder("east", depot.Lat, depot.Lng+0.02, 1, "standard", ""),
			domain.NewOrder("north", depot.Lat+0.02, depot.Lng, 1, "standard", ""),
			domain.NewOrder("west", depot.Lat, depot.Lng-0.02, 1, "standard", ""),
			domain.NewOrder("south", depot.Lat-0.02, depot.Lng, 1, "standard", ""),
		},
		Vehicles: []domain.Vehicle{domain.NewVehicle("T1", "truck", 100, "diesel")},
	}

	res, err := Run(Sweep{}, in, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, []string{"south", "east", "north", "west"}, res.Routes[0].OrderIDs())
}

func TestSweepOpensNextVehicleWhenFull(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		Orders: []domain.Order{
			domain.NewOrder("a", depot.Lat, depot.Lng+0.02, 6, "standard", ""),
			domain.NewOrder("b", depot.Lat+0.02, depot.Lng, 6, "standard", ""),
			domain.NewOrder("c", depot.Lat, depot.Lng-0.02, 6, "standard", ""),
		},
		Vehicles: []domain.Vehicle{
			domain.NewVehicle("V1", "van", 10, "electric"),
			domain.NewVehicle("V2", "van", 10, "electric"),
		},
	}

	res, err := Run(Sweep{}, in, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, res.Routes, 2)
	assert.Equal(t, []string{"a"}, res.Routes[0].OrderIDs())
	assert.Equal(t, []string{"b"}, res.Routes[1].OrderIDs())
	assert.Equal(t, []string{"c"}, res.Unassigned)
}

func TestSavingsRoutesEverythingOnOneTruck(t *testing.T) {
	in := cityInput(12, 5)
	in.Vehicles = []domain.Vehicle{domain.NewVehicle("T1", "truck", 1000, "diesel")}

	res, err := Run(Savings{}, in, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, res.Routes, 1)
	assert.Equal(t, 12, res.Assigned)
}

func TestSavingsUsesEachVehicleOnce(t *testing.T) {
	res, err := Run(Savings{}, cityInput(30, 11), DefaultConfig())
	require.NoError(t, err)

	used := make(map[string]bool)
	for _, r := range res.Routes {
		assert.False(t, used[r.Vehicle.ID], "vehicle %s reused", r.Vehicle.ID)
		used[r.Vehicle.ID] = true
	}
}

func TestBalancedMultiTripSplitsIntoTrips(t *testing.T) {
	depot := DefaultConfig().Depot
	in := Input{
		Orders: []domain.Order{
			domain.NewOrder("a", depot.Lat+0.01, depot.Lng, 8, "standard", ""),
			domain.NewOrder("b", depot.Lat, depot.Lng+0.01, 8, "standard", ""),
			domain.NewOrder("c", depot.Lat-0.01, depot.Lng, 8, "standard", ""),
		},
		Vehicles: []domain.Vehicle{domain.NewVehicle("V1", "van", 10, "electric")},
	}

	res, err := Run(BalancedMultiTrip{}, in, DefaultConfig())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(res.Routes), 2)
	trips := make(map[int]bool)
	for _, r := range res.Routes {
		assert.Equal(t, "V1", r.Vehicle.ID)
		assert.LessOrEqual(t, r.TotalWeightKg, 10.0)
		assert.False(t, trips[r.TripNumber], "trip %d emitted twice", r.TripNumber)
		trips[r.TripNumber] = true
	}
	assert.Equal(t, 3, res.Assigned)
}

func TestBalancedMultiTripHonoursShiftLength(t *testing.T) {
	depot := DefaultConfig().Depot
	cfg := DefaultConfig()
	cfg.MaxShiftMinutes = 30

	in := Input{
		Orders: []domain.Order{
			// Roughly 14 minutes each way at 40 km/h.
			domain.NewOrder("a", depot.Lat+0.06, depot.Lng, 1, "standard", ""),
			domain.NewOrder("b", depot.Lat-0.06, depot.Lng, 1, "standard", ""),
		},
		Vehicles: []domain.Vehicle{domain.NewVehicle("T1", "truck", 100, "diesel")},
	}

	res, err := Run(BalancedMultiTrip{}, in, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Assigned)
	assert.Len(t, res.Unassigned, 1)
}

func TestGeneticSearchIsReproducible(t *testing.T) {
	cfg := testConfig()
	in := cityInput(25, 21)

	p1, err := NewProblem(in, cfg)
	require.NoError(t, err)
	p2, err := NewProblem(in, cfg)
	require.NoError(t, err)

	best1, fit1 := GeneticSearch{}.Evolve(p1)
	best2, fit2 := GeneticSearch{}.Evolve(p2)
	assert.Equal(t, fit1, fit2)
	assert.Equal(t, best1, best2)

	r1, err := Run(GeneticSearch{}, in, cfg)
	require.NoError(t, err)
	r2, err := Run(GeneticSearch{}, in, cfg)
	require.NoError(t, err)
	assert.Equal(t, r1.Routes, r2.Routes)
}

func TestGeneticSearchEmptyChromosomeFitness(t *testing.T) {
	p, err := NewProblem(ljubljanaInput(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, float64(emptyFitness), p.fitness(nil))
}
