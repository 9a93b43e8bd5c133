package ports

import (
	"context"
	"fleet-route-service/internal/domain"
)

// Port: a boundary for storing and retrieving optimization runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.Run) error
	// Return domain.ErrRunNotFound when no run has the id.
	GetRun(ctx context.Context, id string) (*domain.Run, error)
}
