package services

import (
	"cmp"
	"fleet-route-service/internal/domain"
	"slices"
)

// Savings is the Clarke-Wright heuristic: pairs that save the most distance
// when served together seed or grow a route. Routes are never merged.
type Savings struct{}

func (Savings) Name() AlgorithmName { return AlgoSavings }

type saving struct {
	i, j  int
	value float64
}

type savingsRoute struct {
	vehicle int
	seq     []int
	load    float64
}

func (Savings) Plan(p *Problem) ([]domain.Route, int) {
	pairs := make([]saving, 0, len(p.orders)*(len(p.orders)-1)/2)
	for i := range p.orders {
		for j := i + 1; j < len(p.orders); j++ {
			s := p.depotKm(i) + p.depotKm(j) - p.legKm(i, j)
			if p.orders[i].Priority == p.orders[j].Priority {
				s += p.cfg.SamePriorityBonus
			}
			pairs = append(pairs, saving{i: i, j: j, value: s})
		}
	}
	slices.SortStableFunc(pairs, func(a, b saving) int { return cmp.Compare(b.value, a.value) })

	var (
		routes  []*savingsRoute
		routeOf = make([]*savingsRoute, len(p.orders))
		used    = make([]bool, len(p.vehicles))
		byCap   = vehiclesByCapacity(p)
	)

	open := func(members ...int) bool {
		vi, ok := p.firstFreeVehicle(byCap, used, members)
		if !ok {
			return false
		}
		r := &savingsRoute{vehicle: vi, seq: slices.Clone(members), load: p.weightOf(members)}
		used[vi] = true
		routes = append(routes, r)
		for _, m := range members {
			routeOf[m] = r
		}
		return true
	}

	extend := func(r *savingsRoute, i int) bool {
		v := p.vehicles[r.vehicle]
		if !p.fits(v, r.load, i) || !p.canReach(v, i) {
			return false
		}
		r.seq = append(r.seq, i)
		r.load += p.orders[i].WeightKg
		routeOf[i] = r
		return true
	}

	for _, s := range pairs {
		ri, rj := routeOf[s.i], routeOf[s.j]
		switch {
		case ri == nil && rj == nil:
			open(s.i, s.j)
		case ri != nil && rj == nil:
			extend(ri, s.j)
		case ri == nil && rj != nil:
			extend(rj, s.i)
		}
	}

	// Orders no pair could place go into the first route with room, or onto
	// a fresh vehicle.
	for i := range p.orders {
		if routeOf[i] != nil {
			continue
		}

		placed := false
		for _, r := range routes {
			if extend(r, i) {
				placed = true
				break
			}
		}
		if !placed {
			open(i)
		}
	}

	out := make([]domain.Route, 0, len(routes))
	count := 0
	for n, r := range routes {
		route := p.Metrics(p.vehicles[r.vehicle], p.TwoOpt(r.seq), 1)
		route.Color = colorFor(n)
		out = append(out, route)
		count += len(r.seq)
	}

	return out, count
}

// vehiclesByCapacity lists vehicle indices by descending capacity; ties keep
// input order.
func vehiclesByCapacity(p *Problem) []int {
	idx := make([]int, len(p.vehicles))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(p.vehicles[b].MaxCapacityKg, p.vehicles[a].MaxCapacityKg)
	})
	return idx
}

// firstFreeVehicle returns the first unused vehicle in candidates that can
// carry all members and reach each of them.
func (p *Problem) firstFreeVehicle(candidates []int, used []bool, members []int) (int, bool) {
	weight := p.weightOf(members)

	for _, vi := range candidates {
		if used[vi] {
			continue
		}
		v := p.vehicles[vi]
		if weight > v.MaxCapacityKg {
			continue
		}

		reachable := true
		for _, m := range members {
			if !p.canReach(v, m) {
				reachable = false
				break
			}
		}
		if reachable {
			return vi, true
		}
	}

	return 0, false
}
