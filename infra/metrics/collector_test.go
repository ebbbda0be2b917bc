package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

func TestEventCollectorRecordsBusEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, sink)

	// Give the subscriber goroutine a moment to attach.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(events.PlanEvent{})
	bus.Publish(events.SampleEvent{})

	assert.Eventually(t, func() bool {
		plans, samples := sink.counts()
		return plans == 1 && samples == 1
	}, time.Second, 10*time.Millisecond)
}

func TestEventCollectorNilArgsAreNoop(t *testing.T) {
	StartEventCollector(context.Background(), nil, nil)
}
