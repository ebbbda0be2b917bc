// Package mqtt publishes planner telemetry to an MQTT broker so
// home-automation consumers can follow the plan and the live SOC.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/plan"
	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// Config defines the MQTT connection for telemetry publishing.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "chargeplan"
	}
	if c.ClientID == "" {
		c.ClientID = "chargeplan-" + uuid.NewString()[:8]
	}
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient builds the underlying paho client. Tests override it to
// inject a fake.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Telemetry publishes plans and SOC samples as retained JSON messages.
type Telemetry struct {
	cli    pahoClient
	prefix string
	qos    byte
	log    logger.Logger
}

// NewTelemetry connects to the broker.
func NewTelemetry(cfg Config) (*Telemetry, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt-telemetry")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Telemetry{cli: cli, prefix: cfg.TopicPrefix, qos: cfg.QoS, log: log}, nil
}

// PublishPlan publishes the plan on <prefix>/plan.
func (t *Telemetry) PublishPlan(p plan.Plan) error {
	return t.publish(t.prefix+"/plan", p)
}

// PublishSample publishes a live reading on <prefix>/soc.
func (t *Telemetry) PublishSample(ev events.SampleEvent) error {
	return t.publish(t.prefix+"/soc", ev)
}

func (t *Telemetry) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if token := t.cli.Publish(topic, t.qos, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Run forwards bus events to the broker until the context ends.
func (t *Telemetry) Run(ctx context.Context, bus eventbus.EventBus) {
	sub := bus.Subscribe()
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
				if err := t.PublishPlan(e.Plan); err != nil {
					t.log.Errorf("publish plan: %v", err)
				}
			case events.SampleEvent:
				if err := t.PublishSample(e); err != nil {
					t.log.Errorf("publish sample: %v", err)
				}
			}
		}
	}
}

// Close disconnects from the broker.
func (t *Telemetry) Close() {
	if t.cli != nil && t.cli.IsConnected() {
		t.cli.Disconnect(250)
	}
}
