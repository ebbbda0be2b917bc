// Package plan implements day-ahead charge planning for a single fixed-power
// charger. It filters the hours able to host charging under the household
// power ceiling, sizes the energy requirement from the SOC gap, selects the
// cheapest or lowest-load hours and replays the resulting schedule to produce
// the SOC and load trajectories.
package plan
