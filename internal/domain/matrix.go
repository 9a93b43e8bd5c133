package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrMatrixShape = errors.New("malformed distance matrix")

// Precomputed road distances (km) and optional travel times (minutes).
// Rows and columns are indexed depot first, then orders in input order.
type Matrix struct {
	DistancesKm  [][]float64 `json:"distancesKm"`
	DurationsMin [][]float64 `json:"durationsMin,omitempty"`
}

// Validate checks that the matrix covers the depot plus orderCount orders.
func (m *Matrix) Validate(orderCount int) error {
	if m == nil {
		return nil
	}

	n := orderCount + 1
	if err := validateSquare(m.DistancesKm, n); err != nil {
		return fmt.Errorf("validate matrix: distances: %w", err)
	}

	if m.DurationsMin != nil {
		if err := validateSquare(m.DurationsMin, n); err != nil {
			return fmt.Errorf("validate matrix: durations: %w", err)
		}
	}

	return nil
}

// HasDurations reports whether travel times were supplied.
func (m *Matrix) HasDurations() bool {
	return m != nil && len(m.DurationsMin) > 0
}

func validateSquare(rows [][]float64, n int) error {
	if len(rows) != n {
		return fmt.Errorf("%w: got %d rows, want %d", ErrMatrixShape, len(rows), n)
	}

	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrMatrixShape, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: invalid value at [%d][%d]: %v", ErrMatrixShape, i, j, v)
			}
		}
	}

	return nil
}
