package config

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/model"
)

// PlannerConfig defines the optimization settings.
type PlannerConfig struct {
	// Objective is "price" or "load".
	Objective string `json:"objective"`
	// PowerCeilingKW is the maximum combined household+charger draw.
	PowerCeilingKW float64 `json:"power_ceiling_kw"`
}

// SetDefaults applies sane defaults.
func (c *PlannerConfig) SetDefaults() {
	if c.Objective == "" {
		c.Objective = "price"
	}
	if c.PowerCeilingKW == 0 {
		c.PowerCeilingKW = 11.0
	}
}

// Validate checks mandatory fields.
func (c PlannerConfig) Validate() error {
	if _, err := model.ParseObjective(c.Objective); err != nil {
		return err
	}
	if c.PowerCeilingKW <= 0 {
		return fmt.Errorf("power ceiling must be positive, got %g", c.PowerCeilingKW)
	}
	return nil
}
