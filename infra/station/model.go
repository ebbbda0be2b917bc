// Package station implements the charging station REST protocol: a client
// for fetching day profiles and driving the charger relay, and a simulated
// station for local runs and tests.
package station

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/model"
)

// ChargingInfo mirrors the station /info payload. BatteryCapacityKWh is the
// energy currently stored in the EV battery, not the rated capacity.
type ChargingInfo struct {
	SimTimeHour        int     `json:"sim_time_hour"`
	SimTimeMin         int     `json:"sim_time_min"`
	BaseCurrentLoad    float64 `json:"base_current_load"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kWh"`
}

// Validate checks that the payload could come from a sane station clock.
// The replay loop indexes the schedule by SimTimeHour, so an out-of-range
// value must never leave the client.
func (i ChargingInfo) Validate() error {
	if i.SimTimeHour < 0 || i.SimTimeHour >= model.HoursPerDay {
		return fmt.Errorf("station info: sim_time_hour %d outside [0,%d]", i.SimTimeHour, model.HoursPerDay-1)
	}
	if i.SimTimeMin < 0 || i.SimTimeMin > 59 {
		return fmt.Errorf("station info: sim_time_min %d outside [0,59]", i.SimTimeMin)
	}
	if i.BaseCurrentLoad < 0 {
		return fmt.Errorf("station info: base_current_load is negative (%g)", i.BaseCurrentLoad)
	}
	if i.BatteryCapacityKWh < 0 {
		return fmt.Errorf("station info: battery_capacity_kWh is negative (%g)", i.BatteryCapacityKWh)
	}
	return nil
}

// ChargingState switches the charger relay. Charging is "on" or "off".
type ChargingState struct {
	Charging string `json:"charging"`
}

// DischargingState drives the station's discharge relay, used to reset the
// simulated battery before a run.
type DischargingState struct {
	Discharging string `json:"discharging"`
}

// ChargingError is the station error payload.
type ChargingError struct {
	Error string `json:"error"`
}

func stateString(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
