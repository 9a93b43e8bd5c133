package services

import (
	"cmp"
	"fleet-route-service/internal/domain"
	"math"
	"slices"
)

// TimeFirst places orders earliest deadline first, each on the vehicle whose
// route in progress would deliver it with the lowest lateness-weighted score.
type TimeFirst struct{}

func (TimeFirst) Name() AlgorithmName { return AlgoTimeFirst }

// routeInProgress is one vehicle's per-run accumulator.
type routeInProgress struct {
	vehicle domain.Vehicle
	seq     []int
	load    float64
	at      int
	clock   float64
}

func (TimeFirst) Plan(p *Problem) ([]domain.Route, int) {
	order := make([]int, len(p.orders))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareDeadlines(p, a, b)
	})

	fleet := p.vehicleOrder()
	working := make([]*routeInProgress, len(fleet))
	for k, vi := range fleet {
		working[k] = &routeInProgress{vehicle: p.vehicles[vi], at: depotNode, clock: p.shiftStart}
	}

	count := 0
	for _, i := range order {
		end, hasWindow := p.windowEnd(i)

		var (
			best        *routeInProgress
			bestScore   = math.Inf(1)
			bestArrival float64
		)

		for _, r := range working {
			if !p.fits(r.vehicle, r.load, i) || !p.canReach(r.vehicle, i) {
				continue
			}

			arrival := r.clock + p.legMinutes(r.at, i) + p.cfg.ServiceMinutes
			onTime, lateness := Penalty(arrival, end, hasWindow, p.cfg.ToleranceMinutes)

			score := p.legKm(r.at, i)
			if !onTime {
				score += lateness * p.cfg.LatenessWeight
			}
			if score < bestScore {
				best, bestScore, bestArrival = r, score, arrival
			}
		}

		if best == nil {
			continue
		}

		best.seq = append(best.seq, i)
		best.load += p.orders[i].WeightKg
		best.at = i
		best.clock = bestArrival
		count++
	}

	var routes []domain.Route
	for slot, r := range working {
		if len(r.seq) == 0 {
			continue
		}
		route := p.Metrics(r.vehicle, r.seq, 1)
		route.Color = colorFor(slot)
		routes = append(routes, route)
	}

	return routes, count
}

// compareDeadlines orders by deadline; orders without one sort after every
// real deadline, including next-day ones past 24:00.
func compareDeadlines(p *Problem, a, b int) int {
	endA, okA := p.windowEnd(a)
	endB, okB := p.windowEnd(b)
	switch {
	case okA && okB:
		return cmp.Compare(endA, endB)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
