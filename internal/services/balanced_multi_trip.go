package services

import (
	"cmp"
	"fleet-route-service/internal/domain"
	"math"
	"slices"
)

// BalancedMultiTrip spreads load across the fleet by always picking the least
// utilized vehicle, and lets a vehicle return to the depot and start another
// trip when its current one is full.
type BalancedMultiTrip struct{}

func (BalancedMultiTrip) Name() AlgorithmName { return AlgoBalancedMultiTrip }

type vehicleShift struct {
	vehicle domain.Vehicle
	seq     []int
	load    float64
	elapsed float64
	trips   int
}

func (BalancedMultiTrip) Plan(p *Problem) ([]domain.Route, int) {
	order := make([]int, len(p.orders))
	for i := range order {
		order[i] = i
	}
	// Most pressing first, heaviest first within a tier.
	slices.SortStableFunc(order, func(a, b int) int {
		oa, ob := p.orders[a], p.orders[b]
		if c := cmp.Compare(oa.Priority.Rank(), ob.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(ob.WeightKg, oa.WeightKg)
	})

	fleet := p.vehicleOrder()
	shifts := make([]*vehicleShift, len(fleet))
	for k, vi := range fleet {
		shifts[k] = &vehicleShift{vehicle: p.vehicles[vi]}
	}

	var routes []domain.Route
	closeTrip := func(s *vehicleShift) {
		if len(s.seq) == 0 {
			return
		}
		s.trips++
		route := p.Metrics(s.vehicle, p.TwoOpt(s.seq), s.trips)
		route.Color = colorFor(len(routes))
		routes = append(routes, route)
		s.seq, s.load = nil, 0
	}

	count := 0
	for _, i := range order {
		weight := p.orders[i].WeightKg
		outbound := p.legMinutes(depotNode, i)

		var (
			best      *vehicleShift
			bestScore = math.Inf(1)
		)
		for _, s := range shifts {
			if !p.canReach(s.vehicle, i) || weight > s.vehicle.MaxCapacityKg {
				continue
			}
			if s.elapsed+2*outbound > p.cfg.MaxShiftMinutes {
				continue
			}

			score := 0.0
			if s.vehicle.MaxCapacityKg > 0 {
				score = s.load / s.vehicle.MaxCapacityKg
			}
			if !p.fits(s.vehicle, s.load, i) {
				score += p.cfg.NewTripPenalty
			}
			if score < bestScore {
				best, bestScore = s, score
			}
		}

		if best == nil {
			continue
		}

		if !p.fits(best.vehicle, best.load, i) {
			closeTrip(best)
		}
		best.seq = append(best.seq, i)
		best.load += weight
		best.elapsed += outbound
		count++
	}

	for _, s := range shifts {
		closeTrip(s)
	}

	return routes, count
}
