package model

// Schedule marks, per hour of the day, whether the charger runs.
type Schedule [HoursPerDay]bool

// OnHours returns the charging hours in ascending order.
func (s Schedule) OnHours() []int {
	var hours []int
	for h, on := range s {
		if on {
			hours = append(hours, h)
		}
	}
	return hours
}

// CountOn returns the number of charging hours.
func (s Schedule) CountOn() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// SimulationResult is the hour-by-hour replay of a schedule.
type SimulationResult struct {
	// SOC is the state of charge at the end of each hour, in percent.
	SOC [HoursPerDay]float64 `json:"soc"`
	// LoadKW is the realized household plus charger draw per hour.
	LoadKW [HoursPerDay]float64 `json:"load_kw"`
	// EnergyKWh is the energy delivered to the battery per hour.
	EnergyKWh [HoursPerDay]float64 `json:"energy_kwh"`

	DeliveredKWh float64 `json:"delivered_kwh"`
	CostTotal    float64 `json:"cost_total"`
	FinalSOC     float64 `json:"final_soc"`
}
