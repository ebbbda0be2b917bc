package plan

import (
	"sort"

	"github.com/kilianp07/chargeplan/core/model"
)

// SelectSchedule picks the hoursNeeded best hours from the feasible set under
// the objective. Equal keys fall to the lower hour index so repeated runs
// produce the same schedule. When fewer hours are feasible than needed it
// returns a best-effort schedule using every feasible hour and ok=false; it
// never schedules an hour outside the feasible set.
//
// No search is needed: per-hour energy is constant, so the N lowest-keyed
// feasible hours minimize the summed objective.
func SelectSchedule(feasible []int, hoursNeeded int, obj model.Objective, prices model.PriceProfile, load model.LoadProfile) (model.Schedule, bool) {
	key := func(h int) float64 { return load[h] }
	if obj == model.MinimizePrice {
		key = func(h int) float64 { return prices[h] }
	}

	ranked := make([]int, len(feasible))
	copy(ranked, feasible)
	// feasible is in ascending hour order, so a stable sort keeps the
	// lowest index first among equal keys.
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) < key(ranked[j])
	})

	n := hoursNeeded
	ok := true
	if len(ranked) < n {
		n = len(ranked)
		ok = false
	}
	var sched model.Schedule
	for _, h := range ranked[:n] {
		sched[h] = true
	}
	return sched, ok
}
