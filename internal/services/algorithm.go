package services

import (
	"errors"
	"fleet-route-service/internal/domain"
	"fmt"
	"time"
)

type AlgorithmName string

const (
	AlgoDistanceFirst     AlgorithmName = "distance_first"
	AlgoTimeFirst         AlgorithmName = "time_first"
	AlgoSavings           AlgorithmName = "savings"
	AlgoSweep             AlgorithmName = "sweep"
	AlgoGenetic           AlgorithmName = "genetic"
	AlgoBalancedMultiTrip AlgorithmName = "balanced_multi_trip"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm builds routes on a Problem it owns for the duration of the call.
// Plan returns the routes and the number of orders they deliver. Orders it
// cannot place are simply left out; that is never an error.
type Algorithm interface {
	Name() AlgorithmName
	Plan(p *Problem) ([]domain.Route, int)
}

var registry = []Algorithm{
	DistanceFirst{},
	TimeFirst{},
	Savings{},
	Sweep{},
	GeneticSearch{},
	BalancedMultiTrip{},
}

var descriptions = map[AlgorithmName]string{
	AlgoDistanceFirst:     "Nearest feasible order first, one vehicle at a time",
	AlgoTimeFirst:         "Earliest deadline first, on the vehicle that arrives best",
	AlgoSavings:           "Clarke-Wright savings with 2-opt polishing",
	AlgoSweep:             "Polar sweep around the depot",
	AlgoGenetic:           "Genetic search over order-to-vehicle packings",
	AlgoBalancedMultiTrip: "Least-loaded vehicle first, with repeat trips",
}

// Algorithms lists every registered algorithm in a stable order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(registry))
	copy(out, registry)
	return out
}

func Describe(name AlgorithmName) string { return descriptions[name] }

// Lookup resolves an algorithm by name.
func Lookup(name AlgorithmName) (Algorithm, error) {
	for _, a := range registry {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownAlgorithm)
}

// Result is the outcome of one algorithm run.
type Result struct {
	Algorithm  AlgorithmName  `json:"algorithm"`
	Routes     []domain.Route `json:"routes"`
	Assigned   int            `json:"assigned"`
	Unassigned []string       `json:"unassigned"`
	Stats      Stats          `json:"stats"`
	Elapsed    time.Duration  `json:"-"`
}

// Run plans in with algo on a fresh working copy. The only errors are
// ErrNoOrders, ErrNoVehicles and domain.ErrMatrixShape.
func Run(algo Algorithm, in Input, cfg Config) (Result, error) {
	start := time.Now()

	p, err := NewProblem(in, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("run %s: %w", algo.Name(), err)
	}

	routes, assigned := algo.Plan(p)

	return Result{
		Algorithm:  algo.Name(),
		Routes:     routes,
		Assigned:   assigned,
		Unassigned: unassignedIDs(p.orders, routes),
		Stats:      AggregateStats(routes, len(p.orders)),
		Elapsed:    time.Since(start),
	}, nil
}

func unassignedIDs(orders []domain.Order, routes []domain.Route) []string {
	placed := make(map[string]bool)
	for _, r := range routes {
		for _, id := range r.OrderIDs() {
			placed[id] = true
		}
	}

	out := []string{}
	for _, o := range orders {
		if !placed[o.ID] {
			out = append(out, o.ID)
		}
	}
	return out
}
