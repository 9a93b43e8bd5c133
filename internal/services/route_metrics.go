package services

import (
	"fleet-route-service/internal/domain"
	"math"
)

// Metrics simulates a vehicle driving seq from the depot and back, starting
// at the configured shift start. Arrival times include the service time at
// each stop. Distances accumulate at full precision and are rounded once.
func (p *Problem) Metrics(vehicle domain.Vehicle, seq []int, trip int) domain.Route {
	route := domain.Route{
		Vehicle:    vehicle,
		Stops:      make([]domain.Stop, 0, len(seq)),
		TripNumber: trip,
	}

	var (
		distance float64
		now      = p.shiftStart
		prev     = depotNode
	)

	for _, i := range seq {
		leg := p.legKm(prev, i)
		distance += leg
		now += p.legMinutes(prev, i) + p.cfg.ServiceMinutes

		end, hasWindow := p.windowEnd(i)
		onTime, lateness := Penalty(now, end, hasWindow, p.cfg.ToleranceMinutes)

		route.Stops = append(route.Stops, domain.Stop{
			Order:           p.orders[i],
			LegKm:           round1(leg),
			ArrivalMinutes:  now,
			OnTime:          onTime,
			LatenessMinutes: lateness,
		})

		route.TotalWeightKg += p.orders[i].WeightKg
		route.TotalLatenessMinutes += lateness
		if onTime {
			route.OnTimeDeliveries++
		} else {
			route.LateDeliveries++
		}
		prev = i
	}

	if len(seq) > 0 {
		distance += p.legKm(prev, depotNode)
		now += p.legMinutes(prev, depotNode)
	}

	route.TotalDistanceKm = round1(distance)
	route.DurationMinutes = now - p.shiftStart

	return route
}

// routeKm is the unrounded closed-tour length of seq.
func (p *Problem) routeKm(seq []int) float64 {
	if len(seq) == 0 {
		return 0
	}

	total := p.legKm(depotNode, seq[0])
	for k := 1; k < len(seq); k++ {
		total += p.legKm(seq[k-1], seq[k])
	}
	return total + p.legKm(seq[len(seq)-1], depotNode)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
