package model

import (
	"fmt"
	"strings"
)

// Objective selects the ranking key used when choosing charging hours.
type Objective int

const (
	// MinimizeLoad ranks hours by household baseline draw.
	MinimizeLoad Objective = iota
	// MinimizePrice ranks hours by electricity price.
	MinimizePrice
)

// String returns a human-readable representation of the objective.
func (o Objective) String() string {
	switch o {
	case MinimizeLoad:
		return "load"
	case MinimizePrice:
		return "price"
	default:
		return "unknown"
	}
}

// ParseObjective maps a configuration string to an Objective.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(s) {
	case "load", "minimize_load":
		return MinimizeLoad, nil
	case "price", "minimize_price":
		return MinimizePrice, nil
	default:
		return 0, fmt.Errorf("unknown objective: %s", s)
	}
}
