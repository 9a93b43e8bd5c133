package services

import (
	"cmp"
	"fleet-route-service/internal/domain"
	"math"
	"slices"
)

// Sweep orders stops by polar angle around the depot and fills vehicles in
// turn, like a radar arm passing over the city.
type Sweep struct{}

func (Sweep) Name() AlgorithmName { return AlgoSweep }

func (Sweep) Plan(p *Problem) ([]domain.Route, int) {
	angles := make([]float64, len(p.orders))
	order := make([]int, len(p.orders))
	for i, o := range p.orders {
		angles[i] = math.Atan2(o.Location.Lat-p.cfg.Depot.Lat, o.Location.Lng-p.cfg.Depot.Lng)
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(angles[a], angles[b]) })

	fleet := p.vehicleOrder()

	var (
		routes []domain.Route
		count  int
		next   int
		cur    *routeInProgress
	)

	openNext := func() bool {
		if next >= len(fleet) {
			cur = nil
			return false
		}
		cur = &routeInProgress{vehicle: p.vehicles[fleet[next]]}
		next++
		return true
	}

	closeCurrent := func() {
		if cur == nil || len(cur.seq) == 0 {
			return
		}
		// Metrics only; the sweep order is the visit order.
		route := p.Metrics(cur.vehicle, cur.seq, 1)
		route.Color = colorFor(len(routes))
		routes = append(routes, route)
	}

	admits := func(r *routeInProgress, i int) bool {
		return p.fits(r.vehicle, r.load, i) &&
			p.canReach(r.vehicle, i) &&
			float64(len(r.seq))*p.cfg.SweepMinutesPerStop < p.cfg.MaxShiftMinutes
	}

	add := func(r *routeInProgress, i int) {
		r.seq = append(r.seq, i)
		r.load += p.orders[i].WeightKg
		count++
	}

	for _, i := range order {
		if cur == nil && !openNext() {
			break
		}

		if admits(cur, i) {
			add(cur, i)
			continue
		}

		closeCurrent()
		if !openNext() {
			break
		}
		// An order the fresh vehicle cannot take either stays unassigned.
		if admits(cur, i) {
			add(cur, i)
		}
	}

	closeCurrent()

	return routes, count
}
