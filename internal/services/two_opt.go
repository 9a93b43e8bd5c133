package services

import "slices"

// Reversals must beat the current tour by more than this to count.
const improvementEpsilon = 1e-9

// TwoOpt improves a single route's visit order by segment reversal. The depot
// stays fixed at both ends and the stop set never changes, so capacity and
// range feasibility carry over. The input slice is not modified.
//
// Each pass sweeps every (i, k) pair and keeps applying improving reversals;
// TwoOptMaxIterations caps the number of passes. Search stops at the first
// pass that finds nothing, which leaves the tour at a 2-opt local optimum.
func (p *Problem) TwoOpt(seq []int) []int {
	best := slices.Clone(seq)
	if len(best) < 3 {
		return best
	}

	maxIterations := p.cfg.TwoOptMaxIterations
	if maxIterations <= 0 {
		maxIterations = 100
	}

	bestKm := p.routeKm(best)
	for pass := 0; pass < maxIterations; pass++ {
		improved := false

		for i := 0; i < len(best)-1; i++ {
			for k := i + 1; k < len(best); k++ {
				candidate := reverseSegment(best, i, k)
				if km := p.routeKm(candidate); km < bestKm-improvementEpsilon {
					best, bestKm = candidate, km
					improved = true
				}
			}
		}

		if !improved {
			break
		}
	}

	return best
}

func reverseSegment(seq []int, i, k int) []int {
	out := slices.Clone(seq)
	slices.Reverse(out[i : k+1])
	return out
}
