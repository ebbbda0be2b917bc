package plan

import "github.com/kilianp07/chargeplan/core/model"

// FeasibleHours returns the hours able to host charging under the ceiling.
// An hour qualifies iff its baseline load plus the charger power stays at or
// below the ceiling; hours are independent of each other. The result may be
// empty.
func FeasibleHours(load model.LoadProfile, ceilingKW, chargePowerKW float64) []int {
	hours := make([]int, 0, model.HoursPerDay)
	for h, kw := range load {
		if kw+chargePowerKW <= ceilingKW {
			hours = append(hours, h)
		}
	}
	return hours
}
