package services

import (
	"fleet-route-service/internal/domain"
	"math"
	"math/rand"
	"slices"
	"time"
)

// Fitness of a chromosome that decodes to no routes at all.
const emptyFitness = -10000

// Gene assigns an ordered list of orders to one vehicle.
// Both fields hold indices into the Problem's vehicles and orders.
type Gene struct {
	Vehicle int
	Orders  []int
}

// Chromosome is a variable-length partition of orders over vehicles.
// Not every vehicle or order has to appear.
type Chromosome []Gene

func (c Chromosome) clone() Chromosome {
	out := make(Chromosome, len(c))
	for i, g := range c {
		out[i] = Gene{Vehicle: g.Vehicle, Orders: slices.Clone(g.Orders)}
	}
	return out
}

// GeneticSearch evolves random packings with tournament selection,
// single-point crossover and swap mutation. Output is reproducible when
// Config.Genetic.Seed is non-zero.
type GeneticSearch struct {
	// Rand overrides the source derived from the seed.
	// A Rand must not be shared between concurrent runs.
	Rand *rand.Rand
}

func (GeneticSearch) Name() AlgorithmName { return AlgoGenetic }

func (g GeneticSearch) Plan(p *Problem) ([]domain.Route, int) {
	best, _ := g.Evolve(p)

	var (
		routes []domain.Route
		count  int
	)
	for _, gene := range p.decode(best) {
		route := p.Metrics(p.vehicles[gene.Vehicle], p.TwoOpt(gene.Orders), 1)
		route.Color = colorFor(len(routes))
		routes = append(routes, route)
		count += len(gene.Orders)
	}

	return routes, count
}

// Evolve runs the configured number of generations and returns the fittest
// chromosome seen in any generation together with its fitness.
func (g GeneticSearch) Evolve(p *Problem) (Chromosome, float64) {
	cfg := p.cfg.Genetic
	rng := g.rng(cfg.Seed)

	size := max(cfg.PopulationSize, 1)
	population := make([]Chromosome, size)
	for i := range population {
		population[i] = p.randomChromosome(rng)
	}

	var (
		best        Chromosome
		bestFitness = math.Inf(-1)
		scores      = make([]float64, size)
	)

	for gen := 0; gen < max(cfg.Generations, 1); gen++ {
		for i, c := range population {
			scores[i] = p.fitness(c)
			if scores[i] > bestFitness {
				bestFitness = scores[i]
				best = c.clone()
			}
		}

		next := make([]Chromosome, size)
		for i := range next {
			p1 := population[tournament(rng, scores, cfg.TournamentSize)]
			p2 := population[tournament(rng, scores, cfg.TournamentSize)]

			var child Chromosome
			if rng.Float64() < cfg.CrossoverRate {
				child = crossover(rng, p1, p2)
			} else {
				child = p1.clone()
			}
			mutate(rng, child, cfg.MutationRate)
			next[i] = child
		}
		population = next
	}

	return best, bestFitness
}

func (g GeneticSearch) rng(seed int64) *rand.Rand {
	if g.Rand != nil {
		return g.Rand
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randomChromosome packs shuffled orders into shuffled vehicles until each
// is full. Orders out of a vehicle's range are skipped rather than forcing a
// new vehicle.
func (p *Problem) randomChromosome(rng *rand.Rand) Chromosome {
	orders := rng.Perm(len(p.orders))
	vehicles := rng.Perm(len(p.vehicles))

	var (
		c    Chromosome
		vi   int
		gene = Gene{Vehicle: vehicles[0]}
		load float64
	)

	for _, i := range orders {
		v := p.vehicles[gene.Vehicle]
		if !p.canReach(v, i) {
			continue
		}
		if p.fits(v, load, i) {
			gene.Orders = append(gene.Orders, i)
			load += p.orders[i].WeightKg
			continue
		}

		if len(gene.Orders) > 0 {
			c = append(c, gene)
		}
		vi++
		if vi >= len(vehicles) {
			return c
		}

		gene, load = Gene{Vehicle: vehicles[vi]}, 0
		if v := p.vehicles[gene.Vehicle]; p.canReach(v, i) && p.fits(v, 0, i) {
			gene.Orders = append(gene.Orders, i)
			load = p.orders[i].WeightKg
		}
	}

	if len(gene.Orders) > 0 {
		c = append(c, gene)
	}
	return c
}

// decode turns a chromosome into feasible visit sequences. Orders that would
// overflow capacity, lie out of range or were already placed are dropped.
func (p *Problem) decode(c Chromosome) []Gene {
	var (
		out  []Gene
		seen = make([]bool, len(p.orders))
	)

	for _, gene := range c {
		v := p.vehicles[gene.Vehicle]

		var (
			seq  []int
			load float64
		)
		for _, i := range gene.Orders {
			if seen[i] || !p.canReach(v, i) || !p.fits(v, load, i) {
				continue
			}
			seen[i] = true
			seq = append(seq, i)
			load += p.orders[i].WeightKg
		}

		if len(seq) > 0 {
			out = append(out, Gene{Vehicle: gene.Vehicle, Orders: seq})
		}
	}

	return out
}

// fitness rewards short, punctual, well-loaded plans that deliver many
// orders. Higher is better.
func (p *Problem) fitness(c Chromosome) float64 {
	genes := p.decode(c)
	if len(genes) == 0 {
		return emptyFitness
	}

	var distance, lateness, utilization float64
	assigned := 0
	for _, gene := range genes {
		route := p.Metrics(p.vehicles[gene.Vehicle], gene.Orders, 1)
		distance += route.TotalDistanceKm
		lateness += route.TotalLatenessMinutes
		utilization += route.Utilization()
		assigned += len(gene.Orders)
	}
	avgUtilization := utilization / float64(len(genes))

	return -0.30*distance -
		0.25*lateness +
		0.25*(1000*avgUtilization) +
		0.20*(10*float64(assigned))
}

// tournament samples k distinct individuals and returns the fittest.
func tournament(rng *rand.Rand, scores []float64, k int) int {
	k = min(max(k, 1), len(scores))

	best := -1
	for _, idx := range rng.Perm(len(scores))[:k] {
		if best < 0 || scores[idx] > scores[best] {
			best = idx
		}
	}
	return best
}

// crossover splices p1's head onto p2's tail at a random gene boundary, then
// drops repeated orders (first occurrence wins) and folds genes that reuse a
// vehicle into that vehicle's first gene.
func crossover(rng *rand.Rand, p1, p2 Chromosome) Chromosome {
	switch {
	case len(p1) == 0:
		return p2.clone()
	case len(p2) == 0:
		return p1.clone()
	}

	shortest := min(len(p1), len(p2))
	if shortest < 2 {
		return p1.clone()
	}
	point := 1 + rng.Intn(shortest-1)

	spliced := append(p1[:point:point].clone(), p2[point:].clone()...)

	var (
		child  Chromosome
		seen   = make(map[int]bool)
		geneOf = make(map[int]int)
	)
	for _, gene := range spliced {
		var unique []int
		for _, i := range gene.Orders {
			if !seen[i] {
				seen[i] = true
				unique = append(unique, i)
			}
		}
		if len(unique) == 0 {
			continue
		}

		if at, ok := geneOf[gene.Vehicle]; ok {
			child[at].Orders = append(child[at].Orders, unique...)
			continue
		}
		geneOf[gene.Vehicle] = len(child)
		child = append(child, Gene{Vehicle: gene.Vehicle, Orders: unique})
	}

	return child
}

// mutate swaps one order between two different genes with probability rate.
func mutate(rng *rand.Rand, c Chromosome, rate float64) {
	if len(c) < 2 || rng.Float64() >= rate {
		return
	}

	a := rng.Intn(len(c))
	b := rng.Intn(len(c) - 1)
	if b >= a {
		b++
	}

	ga, gb := c[a].Orders, c[b].Orders
	if len(ga) == 0 || len(gb) == 0 {
		return
	}
	x, y := rng.Intn(len(ga)), rng.Intn(len(gb))
	ga[x], gb[y] = gb[y], ga[x]
}
