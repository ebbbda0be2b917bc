package station

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/infra/logger"
)

// SimConfig configures the simulated charging station.
type SimConfig struct {
	Addr string `json:"addr"`
	// SecondsPerHour is the wall-clock duration of one simulated hour.
	SecondsPerHour     float64   `json:"seconds_per_hour"`
	BatteryCapacityKWh float64   `json:"battery_capacity_kwh"`
	ChargePowerKW      float64   `json:"charge_power_kw"`
	StartEnergyKWh     float64   `json:"start_energy_kwh"`
	Prices             []float64 `json:"prices"`
	Baseload           []float64 `json:"baseload"`
}

// SetDefaults applies sane defaults, including built-in price and baseline
// curves with cheap night hours and morning/evening load peaks. Series that
// do not cover exactly one day are replaced by the built-ins; handleInfo
// indexes them by hour, so a short curve must never reach the handlers.
func (c *SimConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:5000"
	}
	if c.SecondsPerHour <= 0 {
		c.SecondsPerHour = 4
	}
	if c.BatteryCapacityKWh <= 0 {
		c.BatteryCapacityKWh = 40
	}
	if c.ChargePowerKW <= 0 {
		c.ChargePowerKW = 7.4
	}
	if len(c.Prices) != model.HoursPerDay {
		c.Prices = []float64{
			0.31, 0.28, 0.26, 0.25, 0.25, 0.27, 0.35, 0.48,
			0.55, 0.52, 0.46, 0.43, 0.41, 0.40, 0.42, 0.47,
			0.56, 0.64, 0.68, 0.62, 0.54, 0.45, 0.38, 0.33,
		}
	}
	if len(c.Baseload) != model.HoursPerDay {
		c.Baseload = []float64{
			0.8, 0.7, 0.6, 0.6, 0.6, 0.9, 1.8, 2.9,
			2.4, 1.6, 1.3, 1.4, 1.7, 1.5, 1.3, 1.6,
			2.6, 3.8, 4.2, 3.9, 3.1, 2.2, 1.4, 1.0,
		}
	}
}

// Sim emulates the charging station REST API: an accelerated 24-hour clock,
// a battery that integrates charger power over simulated time, and the
// profile endpoints the planner fetches.
type Sim struct {
	mu          sync.Mutex
	cfg         SimConfig
	charging    bool
	discharging bool
	storedKWh   float64
	simHours    float64
	last        time.Time
	now         func() time.Time
	log         logger.Logger
}

// NewSim creates a simulated station.
func NewSim(cfg SimConfig) *Sim {
	cfg.SetDefaults()
	s := &Sim{
		cfg:       cfg,
		storedKWh: cfg.StartEnergyKWh,
		now:       time.Now,
		log:       logger.New("station-sim"),
	}
	s.last = s.now()
	return s
}

// Handler returns the station's HTTP routes.
func (s *Sim) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/baseload", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, s.cfg.Baseload)
	})
	r.Get("/priceperhour", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, s.cfg.Prices)
	})
	r.Get("/info", s.handleInfo)
	r.Post("/charge", s.handleCharge)
	r.Post("/discharge", s.handleDischarge)
	return r
}

func (s *Sim) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.advance()
	hour := int(s.simHours) % model.HoursPerDay
	minute := int(s.simHours*60) % 60
	info := ChargingInfo{
		SimTimeHour:        hour,
		SimTimeMin:         minute,
		BaseCurrentLoad:    s.cfg.Baseload[hour],
		BatteryCapacityKWh: s.storedKWh,
	}
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, info)
}

func (s *Sim) handleCharge(w http.ResponseWriter, r *http.Request) {
	var state ChargingState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil || (state.Charging != "on" && state.Charging != "off") {
		respondJSON(w, http.StatusBadRequest, ChargingError{Error: "charging must be \"on\" or \"off\""})
		return
	}
	s.mu.Lock()
	s.advance()
	s.charging = state.Charging == "on"
	s.mu.Unlock()
	s.log.Infof("charging %s", state.Charging)
	respondJSON(w, http.StatusOK, state)
}

func (s *Sim) handleDischarge(w http.ResponseWriter, r *http.Request) {
	var state DischargingState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil || (state.Discharging != "on" && state.Discharging != "off") {
		respondJSON(w, http.StatusBadRequest, ChargingError{Error: "discharging must be \"on\" or \"off\""})
		return
	}
	s.mu.Lock()
	s.advance()
	s.discharging = state.Discharging == "on"
	s.mu.Unlock()
	s.log.Infof("discharging %s", state.Discharging)
	respondJSON(w, http.StatusOK, state)
}

// advance integrates battery energy and the simulated clock since the last
// call. Callers must hold s.mu.
func (s *Sim) advance() {
	t := s.now()
	simHours := t.Sub(s.last).Seconds() / s.cfg.SecondsPerHour
	s.last = t
	s.simHours += simHours
	switch {
	case s.discharging:
		s.storedKWh -= s.cfg.ChargePowerKW * simHours
		if s.storedKWh < 0 {
			s.storedKWh = 0
		}
	case s.charging:
		s.storedKWh += s.cfg.ChargePowerKW * simHours
		if s.storedKWh > s.cfg.BatteryCapacityKWh {
			s.storedKWh = s.cfg.BatteryCapacityKWh
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
