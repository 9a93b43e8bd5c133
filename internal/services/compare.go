package services

import (
	"context"
	"fleet-route-service/internal/platform/obs"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Compare runs the named algorithms concurrently, each on its own copy of
// the input, and returns results in request order. With no names every
// registered algorithm runs. Cancellation is checked before each run starts;
// a run in progress is never interrupted.
func Compare(ctx context.Context, in Input, cfg Config, names ...AlgorithmName) ([]Result, error) {
	algos := Algorithms()
	if len(names) > 0 {
		algos = algos[:0]
		for _, name := range names {
			a, err := Lookup(name)
			if err != nil {
				return nil, fmt.Errorf("compare: %w", err)
			}
			algos = append(algos, a)
		}
	}

	results := make([]Result, len(algos))
	g, ctx := errgroup.WithContext(ctx)
	for i, algo := range algos {
		g.Go(func() (err error) {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer obs.Time(ctx, "algorithm."+string(algo.Name()))(&err)

			results[i], err = Run(algo, in, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	return results, nil
}
