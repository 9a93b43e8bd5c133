package ports

import "context"

// Road distance and travel duration of one directed leg.
type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Persistent cache of legs keyed by coordinate keys (see domain.Coordinates.Key).
type LegCache interface {
	// Return cached legs from one origin to the requested destinations.
	// Misses are simply absent from the result.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]Leg, error)
	// Store legs from one origin.
	PutMany(ctx context.Context, origin string, legs map[string]Leg) error
}
