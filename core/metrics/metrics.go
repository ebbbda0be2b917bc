package metrics

import "github.com/kilianp07/chargeplan/core/events"

// Sink records computed plans for observability purposes. Backends may
// additionally implement SampleRecorder; callers discover it by assertion.
type Sink interface {
	RecordPlan(ev events.PlanEvent) error
}

// SampleRecorder is implemented by sinks able to record live SOC samples.
type SampleRecorder interface {
	RecordSample(ev events.SampleEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(events.PlanEvent) error     { return nil }
func (NopSink) RecordSample(events.SampleEvent) error { return nil }
