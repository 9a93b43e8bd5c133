package services

import (
	"fleet-route-service/internal/domain"
	"math"
)

// DistanceFirst fills one vehicle at a time, always driving to the nearest
// unassigned order that still fits. Priority only breaks near-ties.
type DistanceFirst struct{}

func (DistanceFirst) Name() AlgorithmName { return AlgoDistanceFirst }

func (DistanceFirst) Plan(p *Problem) ([]domain.Route, int) {
	var (
		routes   []domain.Route
		assigned = make([]bool, len(p.orders))
		count    int
	)

	for slot, vi := range p.vehicleOrder() {
		vehicle := p.vehicles[vi]

		var (
			seq  []int
			load float64
			at   = depotNode
		)

		for {
			next := -1
			bestScore := math.Inf(1)

			for i, o := range p.orders {
				if assigned[i] || !p.fits(vehicle, load, i) || !p.canReach(vehicle, i) {
					continue
				}

				score := p.legKm(at, i) + p.cfg.PriorityTieBreakKm*float64(o.Priority.Rank())
				if score < bestScore {
					bestScore = score
					next = i
				}
			}

			if next < 0 {
				break
			}

			assigned[next] = true
			count++
			seq = append(seq, next)
			load += p.orders[next].WeightKg
			at = next
		}

		if len(seq) == 0 {
			continue
		}

		route := p.Metrics(vehicle, seq, 1)
		route.Color = colorFor(slot)
		routes = append(routes, route)
	}

	return routes, count
}
