package ports

import (
	"context"
	"fleet-route-service/internal/domain"
)

// Contract for building a full road distance/time matrix over a point set.
type MatrixProvider interface {
	// Return an n×n matrix where row and column i correspond to points[i].
	BuildMatrix(ctx context.Context, points []domain.Coordinates) (*domain.Matrix, error)
}
