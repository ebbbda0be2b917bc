package mqtt

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/plan"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	mu       sync.Mutex
	messages map[string][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{messages: map[string][]byte{}}
}

func (c *fakeClient) IsConnected() bool   { return true }
func (c *fakeClient) Connect() paho.Token { return &fakeToken{} }
func (c *fakeClient) Disconnect(uint)     {}
func (c *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[topic] = append([]byte(nil), payload.([]byte)...)
	return &fakeToken{}
}

func (c *fakeClient) message(topic string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.messages[topic]
	return msg, ok
}

func withFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	cli := newFakeClient()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })
	return cli
}

func TestTelemetryPublishPlan(t *testing.T) {
	cli := withFakeClient(t)
	telem, err := NewTelemetry(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	defer telem.Close()

	p := plan.Plan{ID: "p-1", Objective: "price", Feasible: true}
	require.NoError(t, telem.PublishPlan(p))

	payload, ok := cli.message("chargeplan/plan")
	require.True(t, ok, "plan not published")
	var got plan.Plan
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "p-1", got.ID)
	assert.True(t, got.Feasible)
}

func TestTelemetryForwardsBusEvents(t *testing.T) {
	cli := withFakeClient(t)
	telem, err := NewTelemetry(Config{Broker: "tcp://localhost:1883", TopicPrefix: "ev"})
	require.NoError(t, err)
	defer telem.Close()

	bus := eventbus.New()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go telem.Run(ctx, bus)

	time.Sleep(10 * time.Millisecond)
	bus.Publish(events.SampleEvent{PlanID: "p-1", Hour: 3, SOC: 35})

	assert.Eventually(t, func() bool {
		_, ok := cli.message("ev/soc")
		return ok
	}, time.Second, 10*time.Millisecond)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "chargeplan", cfg.TopicPrefix)
	assert.NotEmpty(t, cfg.ClientID)
}
