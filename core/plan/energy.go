package plan

import (
	"math"

	"github.com/kilianp07/chargeplan/core/model"
)

// RequiredHours converts the SOC gap into a whole number of charging hours.
// Partial hours round up since the charger only switches on hour boundaries;
// the simulator caps delivery so the final hour never overshoots the target.
func RequiredHours(spec model.BatterySpec) (int, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	need := spec.EnergyNeededKWh()
	if need == 0 {
		return 0, nil
	}
	return int(math.Ceil(need / spec.ChargePowerKW)), nil
}
