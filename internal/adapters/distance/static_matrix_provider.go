package distance

import (
	"context"
	"errors"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
)

// StaticMatrixProvider estimates a matrix from great-circle distances.
// It needs no network and is used offline and in tests.
type StaticMatrixProvider struct {
	// Multiply by services.RoadFactor.
	RoadFactor bool
	// Used to derive durations; zero leaves durations empty.
	SpeedKmh float64
}

func NewStaticMatrixProvider(speedKmh float64) *StaticMatrixProvider {
	return &StaticMatrixProvider{RoadFactor: true, SpeedKmh: speedKmh}
}

func (s *StaticMatrixProvider) BuildMatrix(ctx context.Context, points []domain.Coordinates) (*domain.Matrix, error) {
	if len(points) == 0 {
		return nil, errors.New("build static matrix: points must be non-empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &domain.Matrix{DistancesKm: square(len(points))}
	if s.SpeedKmh > 0 {
		m.DurationsMin = square(len(points))
	}

	for i, a := range points {
		for j, b := range points {
			if i == j {
				continue
			}
			km := services.Distance(a.Lat, a.Lng, b.Lat, b.Lng, s.RoadFactor)
			m.DistancesKm[i][j] = km
			if s.SpeedKmh > 0 {
				m.DurationsMin[i][j] = km / s.SpeedKmh * 60
			}
		}
	}

	return m, nil
}
