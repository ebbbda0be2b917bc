package model

import (
	"errors"
	"fmt"
)

// HoursPerDay is the fixed planning horizon.
const HoursPerDay = 24

// ErrInvalidProfile marks a price or load series that must not enter planning.
var ErrInvalidProfile = errors.New("invalid profile")

// PriceProfile holds one electricity price per hour in currency/kWh.
type PriceProfile []float64

// LoadProfile holds the household baseline draw per hour in kW. The charger
// is not included; it is added on top by the simulator.
type LoadProfile []float64

func validateSeries(name string, s []float64) error {
	if len(s) != HoursPerDay {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidProfile, name, len(s), HoursPerDay)
	}
	for h, v := range s {
		if v < 0 {
			return fmt.Errorf("%w: %s[%d] is negative (%g)", ErrInvalidProfile, name, h, v)
		}
	}
	return nil
}

// Validate checks length and non-negativity.
func (p PriceProfile) Validate() error { return validateSeries("price profile", p) }

// Validate checks length and non-negativity.
func (l LoadProfile) Validate() error { return validateSeries("load profile", l) }
