package services

import (
	"errors"
	"fleet-route-service/internal/domain"
	"fmt"
	"slices"
)

var (
	ErrNoOrders   = errors.New("no orders to route")
	ErrNoVehicles = errors.New("no vehicles available")
)

// depotNode marks the depot in node sequences; orders use their input index.
const depotNode = -1

var routeColors = []string{
	"#ff3b4a", "#00d4ff", "#7c3aed", "#f59e0b", "#10b981",
	"#ec4899", "#3b82f6", "#8b5cf6", "#f97316", "#14b8a6",
	"#ef4444", "#06b6d4", "#a855f7", "#eab308", "#22c55e",
	"#db2777", "#6366f1", "#d946ef", "#fb923c", "#2dd4bf",
}

// Input is the caller-owned data for one planning run.
type Input struct {
	Orders   []domain.Order
	Vehicles []domain.Vehicle
	// Optional road matrix, depot first then orders in input order.
	Matrix *domain.Matrix
}

// Problem is the working copy a single algorithm invocation owns.
// It deep-copies orders and vehicles so concurrent runs never alias state,
// and answers every distance and time question through one cost model.
type Problem struct {
	cfg        Config
	orders     []domain.Order
	vehicles   []domain.Vehicle
	matrix     *domain.Matrix
	rangeKm    []float64
	shiftStart float64
}

// NewProblem validates the input and builds an isolated working copy.
func NewProblem(in Input, cfg Config) (*Problem, error) {
	if len(in.Orders) == 0 {
		return nil, fmt.Errorf("new problem: %w", ErrNoOrders)
	}
	if len(in.Vehicles) == 0 {
		return nil, fmt.Errorf("new problem: %w", ErrNoVehicles)
	}
	if err := in.Matrix.Validate(len(in.Orders)); err != nil {
		return nil, fmt.Errorf("new problem: %w", err)
	}

	p := &Problem{
		cfg:        cfg,
		orders:     make([]domain.Order, len(in.Orders)),
		vehicles:   make([]domain.Vehicle, len(in.Vehicles)),
		matrix:     cloneMatrix(in.Matrix),
		rangeKm:    make([]float64, len(in.Orders)),
		shiftStart: cfg.ShiftStartMinutes(),
	}

	for i, o := range in.Orders {
		p.orders[i] = o.Normalize()
	}
	for i, v := range in.Vehicles {
		p.vehicles[i] = v.Normalize()
	}

	// Range limits are geometric, so they always use GeoCost even when a road
	// matrix is supplied.
	for i, o := range p.orders {
		p.rangeKm[i] = Distance(cfg.Depot.Lat, cfg.Depot.Lng, o.Location.Lat, o.Location.Lng, true)
	}

	return p, nil
}

func (p *Problem) Config() Config             { return p.cfg }
func (p *Problem) Orders() []domain.Order     { return p.orders }
func (p *Problem) Vehicles() []domain.Vehicle { return p.vehicles }

func (p *Problem) location(node int) domain.Coordinates {
	if node == depotNode {
		return p.cfg.Depot
	}
	return p.orders[node].Location
}

// legKm is the travel distance between two nodes.
func (p *Problem) legKm(from, to int) float64 {
	if p.matrix != nil {
		return p.matrix.DistancesKm[from+1][to+1]
	}
	a, b := p.location(from), p.location(to)
	return Distance(a.Lat, a.Lng, b.Lat, b.Lng, true)
}

// legMinutes is the travel time between two nodes.
func (p *Problem) legMinutes(from, to int) float64 {
	if p.matrix.HasDurations() {
		return p.matrix.DurationsMin[from+1][to+1]
	}
	return p.legKm(from, to) / p.cfg.AverageSpeedKmh * 60
}

// depotKm is the routing distance from the depot to an order.
func (p *Problem) depotKm(i int) float64 { return p.legKm(depotNode, i) }

// canReach reports whether an order lies within the vehicle's range limit.
func (p *Problem) canReach(v domain.Vehicle, i int) bool {
	return p.rangeKm[i] <= p.cfg.RangeLimit(v.Type)
}

// fits reports whether an order still fits on top of the current load.
func (p *Problem) fits(v domain.Vehicle, loadKg float64, i int) bool {
	return loadKg+p.orders[i].WeightKg <= v.MaxCapacityKg
}

// windowEnd resolves an order's deadline in minutes since midnight.
func (p *Problem) windowEnd(i int) (int, bool) {
	return ParseClock(p.orders[i].WindowEnd)
}

// vehicleOrder returns vehicle indices, electric first, then by descending
// capacity. Ties keep input order.
func (p *Problem) vehicleOrder() []int {
	idx := make([]int, len(p.vehicles))
	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		va, vb := p.vehicles[a], p.vehicles[b]
		if va.IsElectric() != vb.IsElectric() {
			if va.IsElectric() {
				return -1
			}
			return 1
		}
		switch {
		case va.MaxCapacityKg > vb.MaxCapacityKg:
			return -1
		case va.MaxCapacityKg < vb.MaxCapacityKg:
			return 1
		}
		return 0
	})

	return idx
}

func (p *Problem) weightOf(seq []int) float64 {
	total := 0.0
	for _, i := range seq {
		total += p.orders[i].WeightKg
	}
	return total
}

func colorFor(n int) string { return routeColors[n%len(routeColors)] }

func cloneMatrix(m *domain.Matrix) *domain.Matrix {
	if m == nil {
		return nil
	}
	out := &domain.Matrix{DistancesKm: cloneRows(m.DistancesKm)}
	if len(m.DurationsMin) > 0 {
		out.DurationsMin = cloneRows(m.DurationsMin)
	}
	return out
}

func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
