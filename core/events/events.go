// Package events defines the events exchanged on the internal bus between
// the planner service and its observers (metrics sinks, MQTT telemetry).
package events

import (
	"time"

	"github.com/kilianp07/chargeplan/core/plan"
)

// PlanEvent announces a freshly computed charge plan.
type PlanEvent struct {
	Plan plan.Plan
	Time time.Time
}

// SampleEvent carries a live battery reading taken while replaying a plan
// against the charging station.
type SampleEvent struct {
	PlanID   string
	Hour     int
	Minute   int
	SOC      float64
	LoadKW   float64
	Charging bool
	Time     time.Time
}
