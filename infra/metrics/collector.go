package metrics

import (
	"context"

	"github.com/kilianp07/chargeplan/core/events"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// plan and sample events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.PlanEvent:
					_ = sink.RecordPlan(e)
				case events.SampleEvent:
					if r, ok := sink.(coremetrics.SampleRecorder); ok {
						_ = r.RecordSample(e)
					}
				}
			}
		}
	}()
}
