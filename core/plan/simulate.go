package plan

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/chargeplan/core/model"
)

// ErrConstraintViolation indicates a feasible schedule broke an invariant
// during replay. It is a bug in the planner, never a recoverable condition.
var ErrConstraintViolation = errors.New("constraint violation")

// energyTolKWh bounds the rounding error accepted when comparing delivered
// energy against the requirement.
const energyTolKWh = 1e-6

// Simulate replays the schedule hour by hour. Delivery in each charging hour
// is capped at the remaining energy need, so the final hour may run below
// full charger power and the battery never overshoots the target SOC.
//
// feasible reports whether the selector met the full requirement. For
// feasible schedules two post-conditions are enforced: the realized load
// never exceeds the ceiling and the final SOC equals the target. A breach is
// returned as ErrConstraintViolation.
func Simulate(sched model.Schedule, spec model.BatterySpec, prices model.PriceProfile, load model.LoadProfile, ceilingKW float64, feasible bool) (model.SimulationResult, error) {
	var res model.SimulationResult
	soc := spec.StartSOC
	remaining := spec.EnergyNeededKWh()

	for h := 0; h < model.HoursPerDay; h++ {
		kw := load[h]
		if sched[h] && remaining > 0 {
			delivered := math.Min(spec.ChargePowerKW, remaining)
			remaining -= delivered
			soc += delivered / spec.CapacityKWh * 100
			res.EnergyKWh[h] = delivered
			res.DeliveredKWh += delivered
			res.CostTotal += prices[h] * delivered
			// one-hour slots: kWh delivered equals average kW drawn
			kw += delivered
		}
		res.SOC[h] = soc
		res.LoadKW[h] = kw
		if feasible && kw > ceilingKW+1e-9 {
			return res, fmt.Errorf("%w: hour %d draws %.3f kW above ceiling %.3f kW", ErrConstraintViolation, h, kw, ceilingKW)
		}
	}
	res.FinalSOC = soc

	if feasible && math.Abs(remaining) > energyTolKWh {
		return res, fmt.Errorf("%w: %.6f kWh undelivered on a feasible schedule", ErrConstraintViolation, remaining)
	}
	return res, nil
}
