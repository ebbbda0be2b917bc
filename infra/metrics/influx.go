package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/chargeplan/core/events"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/infra/logger"
)

// InfluxSink writes plan and SOC events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes the plan summary as a single point.
func (s *InfluxSink) RecordPlan(ev events.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := ev.Plan
	pt := write.NewPointWithMeasurement("charge_plan").
		AddTag("plan_id", p.ID).
		AddTag("objective", p.Objective).
		AddTag("feasible", strconv.FormatBool(p.Feasible)).
		AddField("hours", p.Schedule.CountOn()).
		AddField("energy_kwh", round3(p.Result.DeliveredKWh)).
		AddField("cost_total", round3(p.TotalCost)).
		AddField("peak_load_kw", round3(p.PeakLoadKW)).
		AddField("final_soc", round3(p.Result.FinalSOC)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, pt)
}

// RecordSample writes a live SOC reading.
func (s *InfluxSink) RecordSample(ev events.SampleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pt := write.NewPointWithMeasurement("battery_soc").
		AddTag("plan_id", ev.PlanID).
		AddTag("charging", strconv.FormatBool(ev.Charging)).
		AddField("soc", round3(ev.SOC)).
		AddField("load_kw", round3(ev.LoadKW)).
		AddField("sim_hour", ev.Hour).
		AddField("sim_minute", ev.Minute).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, pt)
}

// Close shuts the underlying client down.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}
