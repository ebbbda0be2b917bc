// Package app wires the planner, the station client and the observers into
// a runnable service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/chargeplan/config"
	"github.com/kilianp07/chargeplan/core/events"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/core/plan"
	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/infra/metrics"
	"github.com/kilianp07/chargeplan/infra/mqtt"
	"github.com/kilianp07/chargeplan/infra/station"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// Service computes the day-ahead charge plan and replays it against the
// charging station.
type Service struct {
	cfg     *config.Config
	planner plan.Planner
	station *station.Client
	bus     eventbus.EventBus
	sink    coremetrics.Sink
	telem   *mqtt.Telemetry
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	obj, err := model.ParseObjective(cfg.Planner.Objective)
	if err != nil {
		return nil, err
	}
	sink, err := metrics.FromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc := &Service{
		cfg:     cfg,
		planner: plan.New(obj, cfg.Planner.PowerCeilingKW),
		station: station.NewClient(cfg.Station),
		bus:     eventbus.New(),
		sink:    sink,
		log:     logger.New("service"),
	}
	if cfg.MQTT.Enabled {
		telem, err := mqtt.NewTelemetry(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt telemetry: %w", err)
		}
		svc.telem = telem
	}
	return svc, nil
}

// Run computes the plan and drives the charger until the context is
// cancelled. The charger is switched off on the way out.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.telem != nil {
		go s.telem.Run(ctx, s.bus)
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	p, err := s.PlanOnce(ctx)
	if err != nil {
		return err
	}
	s.bus.Publish(events.PlanEvent{Plan: p, Time: time.Now()})
	s.log.Infof("plan %s: %d charging hours, %.1f kWh, cost %.2f, feasible=%t",
		p.ID, p.Schedule.CountOn(), p.Result.DeliveredKWh, p.TotalCost, p.Feasible)
	s.log.Debugw("plan detail", map[string]any{
		"hours":        p.Schedule.OnHours(),
		"peak_load_kw": p.PeakLoadKW,
		"final_soc":    p.Result.FinalSOC,
	})
	if !p.Feasible {
		s.log.Warnf("only %d of %d required hours are feasible, battery will stop at %.1f%%",
			p.Schedule.CountOn(), p.HoursNeeded, p.Result.FinalSOC)
	}

	return s.replay(ctx, p)
}

// PlanOnce fetches the day profiles from the station and computes a plan.
func (s *Service) PlanOnce(ctx context.Context) (plan.Plan, error) {
	load, err := s.station.Baseload(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("fetch baseload: %w", err)
	}
	prices, err := s.station.Prices(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("fetch prices: %w", err)
	}
	return s.planner.Plan(s.cfg.Battery, prices, load)
}

// replay polls the station clock and flips the charger at hour boundaries
// according to the schedule, publishing a SOC sample per poll.
func (s *Service) replay(ctx context.Context, p plan.Plan) error {
	if err := s.station.SetCharging(ctx, false); err != nil {
		return fmt.Errorf("reset charger: %w", err)
	}
	charging := false

	interval := time.Duration(s.cfg.Station.PollIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.station.SetCharging(stopCtx, false); err != nil {
				s.log.Errorf("stop charging: %v", err)
			}
			return nil
		case <-ticker.C:
			info, err := s.station.Info(ctx)
			if err != nil {
				s.log.Errorf("station info: %v", err)
				continue
			}
			want := p.Schedule[info.SimTimeHour]
			if want != charging {
				if err := s.station.SetCharging(ctx, want); err != nil {
					s.log.Errorf("switch charging: %v", err)
					continue
				}
				charging = want
			}
			loadKW := info.BaseCurrentLoad
			if charging {
				loadKW += s.cfg.Battery.ChargePowerKW
			}
			s.bus.Publish(events.SampleEvent{
				PlanID:   p.ID,
				Hour:     info.SimTimeHour,
				Minute:   info.SimTimeMin,
				SOC:      info.BatteryCapacityKWh / s.cfg.Battery.CapacityKWh * 100,
				LoadKW:   loadKW,
				Charging: charging,
				Time:     time.Now(),
			})
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.telem != nil {
		s.telem.Close()
	}
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
