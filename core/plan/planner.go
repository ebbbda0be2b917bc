package plan

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/chargeplan/core/model"
)

// Plan is the planner output handed to reporting collaborators.
type Plan struct {
	ID              string                 `json:"id"`
	Objective       string                 `json:"objective"`
	Feasible        bool                   `json:"feasible"`
	HoursNeeded     int                    `json:"hours_needed"`
	EnergyNeededKWh float64                `json:"energy_needed_kwh"`
	Schedule        model.Schedule         `json:"schedule"`
	Result          model.SimulationResult `json:"result"`
	TotalCost       float64                `json:"total_cost"`
	TotalLoadKWh    float64                `json:"total_load_kwh"`
	PeakLoadKW      float64                `json:"peak_load_kw"`
}

// Planner runs the full pipeline over validated inputs. The zero value is
// not usable; construct it with New.
type Planner struct {
	Objective      model.Objective
	PowerCeilingKW float64
}

// New creates a Planner for the given objective and ceiling.
func New(obj model.Objective, ceilingKW float64) Planner {
	return Planner{Objective: obj, PowerCeilingKW: ceilingKW}
}

// Plan validates the profiles, filters feasible hours, sizes the energy
// requirement, selects the schedule and simulates it. Infeasibility is not
// an error: the returned Plan carries Feasible=false and the best-effort
// schedule. Profile and SOC range errors abort before any selection.
func (p Planner) Plan(spec model.BatterySpec, prices model.PriceProfile, load model.LoadProfile) (Plan, error) {
	if err := prices.Validate(); err != nil {
		return Plan{}, err
	}
	if err := load.Validate(); err != nil {
		return Plan{}, err
	}
	hoursNeeded, err := RequiredHours(spec)
	if err != nil {
		return Plan{}, err
	}

	feasible := FeasibleHours(load, p.PowerCeilingKW, spec.ChargePowerKW)
	sched, ok := SelectSchedule(feasible, hoursNeeded, p.Objective, prices, load)
	res, err := Simulate(sched, spec, prices, load, p.PowerCeilingKW, ok)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		ID:              uuid.NewString(),
		Objective:       p.Objective.String(),
		Feasible:        ok,
		HoursNeeded:     hoursNeeded,
		EnergyNeededKWh: spec.EnergyNeededKWh(),
		Schedule:        sched,
		Result:          res,
		TotalCost:       res.CostTotal,
		TotalLoadKWh:    floats.Sum(res.LoadKW[:]),
		PeakLoadKW:      floats.Max(res.LoadKW[:]),
	}, nil
}
