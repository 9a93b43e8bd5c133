package services

import (
	"errors"
	"fleet-route-service/internal/domain"
	"fmt"
	"math"
)

// Config holds every tunable of the routing engine.
// Values are never read from globals; each run receives its own copy.
type Config struct {
	Depot domain.Coordinates `yaml:"depot"`

	// Clock time the fleet leaves the depot ("HH:MM").
	ShiftStart       string  `yaml:"shift_start"`
	AverageSpeedKmh  float64 `yaml:"average_speed_kmh"`
	ServiceMinutes   float64 `yaml:"service_minutes"`
	ToleranceMinutes float64 `yaml:"tolerance_minutes"`
	MaxShiftMinutes  float64 `yaml:"max_shift_minutes"`

	// Range limits in km keyed by vehicle type. Types not listed are unlimited.
	RangeLimitsKm map[domain.VehicleType]float64 `yaml:"range_limits_km"`

	// Distance-First tie-break weight per priority rank, in km.
	// Tunable; it mixes units and has no principled derivation.
	PriorityTieBreakKm float64 `yaml:"priority_tie_break_km"`
	// Time-First penalty per late minute.
	LatenessWeight float64 `yaml:"lateness_weight"`
	// Savings bonus when both orders share a priority tier.
	SamePriorityBonus float64 `yaml:"same_priority_bonus"`
	// Sweep's flat per-stop shift estimate.
	SweepMinutesPerStop float64 `yaml:"sweep_minutes_per_stop"`
	// Balanced Multi-Trip score penalty for opening a new trip.
	NewTripPenalty float64 `yaml:"new_trip_penalty"`

	TwoOptMaxIterations int `yaml:"two_opt_max_iterations"`

	Genetic GeneticConfig `yaml:"genetic"`
}

type GeneticConfig struct {
	Generations    int     `yaml:"generations"`
	PopulationSize int     `yaml:"population_size"`
	TournamentSize int     `yaml:"tournament_size"`
	CrossoverRate  float64 `yaml:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	// Zero seeds from the wall clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the settings of the simple construction algorithms:
// Ljubljana depot, 08:00 start, 40 km/h, 5 minute stops, 60 minute grace.
func DefaultConfig() Config {
	return Config{
		Depot:            domain.Coordinates{Lat: 46.0569, Lng: 14.5058},
		ShiftStart:       "08:00",
		AverageSpeedKmh:  40,
		ServiceMinutes:   5,
		ToleranceMinutes: 60,
		MaxShiftMinutes:  600,
		RangeLimitsKm: map[domain.VehicleType]float64{
			domain.VehicleBike: 15,
			domain.VehicleVan:  50,
		},
		PriorityTieBreakKm:  0.5,
		LatenessWeight:      10,
		SamePriorityBonus:   1.0,
		SweepMinutesPerStop: 20,
		NewTripPenalty:      0.5,
		TwoOptMaxIterations: 100,
		Genetic: GeneticConfig{
			Generations:    50,
			PopulationSize: 30,
			TournamentSize: 3,
			CrossoverRate:  0.7,
			MutationRate:   0.2,
		},
	}
}

// RangeLimit returns the maximum depot distance for a vehicle type.
func (c Config) RangeLimit(t domain.VehicleType) float64 {
	if limit, ok := c.RangeLimitsKm[t]; ok {
		return limit
	}
	return math.Inf(1)
}

// ShiftStartMinutes parses ShiftStart, falling back to 08:00.
func (c Config) ShiftStartMinutes() float64 {
	if m, ok := ParseClock(c.ShiftStart); ok {
		return float64(m)
	}
	return 8 * 60
}

// Validate rejects settings no algorithm can work with.
func (c Config) Validate() error {
	if _, ok := ParseClock(c.ShiftStart); !ok {
		return fmt.Errorf("config: invalid shift_start %q", c.ShiftStart)
	}
	if c.AverageSpeedKmh <= 0 {
		return errors.New("config: average_speed_kmh must be > 0")
	}
	if c.ServiceMinutes < 0 || c.ToleranceMinutes < 0 {
		return errors.New("config: service_minutes and tolerance_minutes must be >= 0")
	}
	if c.MaxShiftMinutes <= 0 {
		return errors.New("config: max_shift_minutes must be > 0")
	}
	for t, limit := range c.RangeLimitsKm {
		if limit < 0 {
			return fmt.Errorf("config: range limit for %q must be >= 0", t)
		}
	}
	g := c.Genetic
	if g.Generations < 1 || g.PopulationSize < 1 || g.TournamentSize < 1 {
		return errors.New("config: genetic generations, population_size and tournament_size must be >= 1")
	}
	if g.CrossoverRate < 0 || g.CrossoverRate > 1 || g.MutationRate < 0 || g.MutationRate > 1 {
		return errors.New("config: genetic rates must be within [0,1]")
	}
	return nil
}
