package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/chargeplan/core/events"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
)

// PromSink records plan and battery metrics in Prometheus collectors.
type PromSink struct {
	plans    *prometheus.CounterVec
	hours    prometheus.Gauge
	energy   prometheus.Gauge
	cost     prometheus.Gauge
	peakLoad prometheus.Gauge
	soc      prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "charge_plans_total",
			Help: "Total number of computed charge plans",
		}, []string{"objective", "feasible"}),
		hours: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "charge_plan_hours",
			Help: "Charging hours selected by the latest plan",
		}),
		energy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "charge_plan_energy_kwh",
			Help: "Energy delivered by the latest plan in kWh",
		}),
		cost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "charge_plan_cost_total",
			Help: "Simulated electricity cost of the latest plan",
		}),
		peakLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "charge_plan_peak_load_kw",
			Help: "Peak realized household load of the latest plan in kW",
		}),
		soc: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "battery_soc_percent",
			Help: "Last battery state of charge reported by the station",
		}),
	}

	for _, c := range []prometheus.Collector{s.plans, s.hours, s.energy, s.cost, s.peakLoad, s.soc} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordPlan updates the plan gauges and counter.
func (s *PromSink) RecordPlan(ev events.PlanEvent) error {
	p := ev.Plan
	s.plans.WithLabelValues(p.Objective, strconv.FormatBool(p.Feasible)).Inc()
	s.hours.Set(float64(p.Schedule.CountOn()))
	s.energy.Set(p.Result.DeliveredKWh)
	s.cost.Set(p.TotalCost)
	s.peakLoad.Set(p.PeakLoadKW)
	return nil
}

// RecordSample sets the SOC gauge from a live station reading.
func (s *PromSink) RecordSample(ev events.SampleEvent) error {
	s.soc.Set(ev.SOC)
	return nil
}
