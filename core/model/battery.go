package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSOCRange marks a start/target SOC pair outside the supported range.
var ErrInvalidSOCRange = errors.New("invalid soc range")

// BatterySpec describes the EV battery and the bounds of one charging session.
// SOC values are percentages of CapacityKWh.
type BatterySpec struct {
	CapacityKWh   float64 `json:"capacity_kwh"`
	ChargePowerKW float64 `json:"charge_power_kw"`
	StartSOC      float64 `json:"start_soc"`
	TargetSOC     float64 `json:"target_soc"`
}

// Validate checks that the battery configuration is sound. TargetSOC below
// StartSOC is a configuration error, not a discharge request.
func (b BatterySpec) Validate() error {
	if b.CapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive, got %g", b.CapacityKWh)
	}
	if b.ChargePowerKW <= 0 {
		return fmt.Errorf("charge power must be positive, got %g", b.ChargePowerKW)
	}
	if b.StartSOC < 0 || b.StartSOC > 100 {
		return fmt.Errorf("%w: start soc %.1f outside [0,100]", ErrInvalidSOCRange, b.StartSOC)
	}
	if b.TargetSOC < 0 || b.TargetSOC > 100 {
		return fmt.Errorf("%w: target soc %.1f outside [0,100]", ErrInvalidSOCRange, b.TargetSOC)
	}
	if b.TargetSOC < b.StartSOC {
		return fmt.Errorf("%w: target soc %.1f below start soc %.1f", ErrInvalidSOCRange, b.TargetSOC, b.StartSOC)
	}
	return nil
}

// EnergyNeededKWh returns the energy required to move from start to target SOC.
func (b BatterySpec) EnergyNeededKWh() float64 {
	return b.CapacityKWh * (b.TargetSOC - b.StartSOC) / 100
}
