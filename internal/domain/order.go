package domain

import "strings"

// Priority tier of a delivery order.
type Priority string

const (
	PriorityExpress  Priority = "express"
	PriorityUrgent   Priority = "urgent"
	PriorityStandard Priority = "standard"
)

// ParsePriority maps free-form input onto a known tier.
// Anything unrecognized becomes standard.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityExpress:
		return PriorityExpress
	case PriorityUrgent:
		return PriorityUrgent
	default:
		return PriorityStandard
	}
}

// Rank orders tiers from most to least pressing: express=0, urgent=1, standard=2.
func (p Priority) Rank() int {
	switch p {
	case PriorityExpress:
		return 0
	case PriorityUrgent:
		return 1
	default:
		return 2
	}
}

// Represents a single delivery request.
// Orders are read-only inputs; algorithms attach derived timing data to a Stop
// copy and never mutate the order itself.
// WindowStart and WindowEnd hold raw clock strings ("HH:MM" or "HH:MM:SS").
// An empty or unparsable WindowEnd means the order has no deadline.
type Order struct {
	ID          string      `json:"id"`
	Address     string      `json:"address,omitempty"`
	Location    Coordinates `json:"location"`
	WeightKg    float64     `json:"weight"`
	Priority    Priority    `json:"priority"`
	WindowStart string      `json:"windowStart,omitempty"`
	WindowEnd   string      `json:"windowEnd,omitempty"`
}

// NewOrder builds an order with defaults applied.
func NewOrder(id string, lat, lng, weightKg float64, priority string, windowEnd string) Order {
	o := Order{
		ID:        id,
		Location:  Coordinates{Lat: lat, Lng: lng},
		WeightKg:  weightKg,
		Priority:  Priority(priority),
		WindowEnd: windowEnd,
	}
	return o.Normalize()
}

// Normalize applies the documented defaults once, at construction time:
// unknown priority becomes standard and negative weight becomes zero.
func (o Order) Normalize() Order {
	o.ID = strings.TrimSpace(o.ID)
	o.Priority = ParsePriority(string(o.Priority))
	if o.WeightKg < 0 {
		o.WeightKg = 0
	}
	o.WindowStart = strings.TrimSpace(o.WindowStart)
	o.WindowEnd = strings.TrimSpace(o.WindowEnd)
	return o
}
