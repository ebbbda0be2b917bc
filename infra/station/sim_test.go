package station

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/model"
)

func decodeBody(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

// fixedClock advances only when the test says so.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSimWithClock(cfg SimConfig) (*Sim, *fixedClock) {
	clk := &fixedClock{t: time.Unix(0, 0)}
	s := NewSim(cfg)
	s.now = clk.now
	s.last = clk.t
	return s, clk
}

func TestSimClockAcceleration(t *testing.T) {
	s, clk := newSimWithClock(SimConfig{SecondsPerHour: 2})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	clk.advance(5 * time.Second) // 2.5 simulated hours

	resp, err := http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	var info ChargingInfo
	require.NoError(t, decodeBody(resp, &info))
	assert.Equal(t, 2, info.SimTimeHour)
	assert.Equal(t, 30, info.SimTimeMin)
}

func TestSimChargingIntegratesEnergy(t *testing.T) {
	s, clk := newSimWithClock(SimConfig{SecondsPerHour: 1, ChargePowerKW: 7.4, BatteryCapacityKWh: 40})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/charge", "application/json", strings.NewReader(`{"charging":"on"}`))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	clk.advance(2 * time.Second) // 2 simulated hours of charging

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()
	var info ChargingInfo
	require.NoError(t, decodeBody(resp, &info))
	assert.InDelta(t, 14.8, info.BatteryCapacityKWh, 1e-6)
}

func TestSimChargeCapsAtCapacity(t *testing.T) {
	s, clk := newSimWithClock(SimConfig{SecondsPerHour: 1, ChargePowerKW: 7.4, BatteryCapacityKWh: 10})
	s.charging = true

	clk.advance(10 * time.Second)
	s.mu.Lock()
	s.advance()
	stored := s.storedKWh
	s.mu.Unlock()
	assert.InDelta(t, 10, stored, 1e-9)
}

func TestSimDischargeDrainsToZero(t *testing.T) {
	s, clk := newSimWithClock(SimConfig{SecondsPerHour: 1, ChargePowerKW: 7.4, StartEnergyKWh: 5})
	s.discharging = true

	clk.advance(3 * time.Second)
	s.mu.Lock()
	s.advance()
	stored := s.storedKWh
	s.mu.Unlock()
	assert.Zero(t, stored)
}

func TestSimRejectsBadChargePayload(t *testing.T) {
	s := NewSim(SimConfig{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/charge", "application/json", strings.NewReader(`{"charging":"maybe"}`))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var stErr ChargingError
	require.NoError(t, decodeBody(resp, &stErr))
	assert.NotEmpty(t, stErr.Error)
}

func TestSimReplacesShortCurves(t *testing.T) {
	s, clk := newSimWithClock(SimConfig{
		SecondsPerHour: 1,
		Prices:         []float64{0.1, 0.2},
		Baseload:       []float64{1.5},
	})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	assert.Len(t, s.cfg.Prices, model.HoursPerDay)
	assert.Len(t, s.cfg.Baseload, model.HoursPerDay)

	// /info indexes the baseload by hour and must work for every hour of
	// the day, not just the hours the caller supplied.
	clk.advance(23 * time.Second)
	resp, err := http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var info ChargingInfo
	require.NoError(t, decodeBody(resp, &info))
	assert.Equal(t, 23, info.SimTimeHour)
}

func TestSimDefaultCurvesAreValid(t *testing.T) {
	var cfg SimConfig
	cfg.SetDefaults()
	assert.Len(t, cfg.Prices, 24)
	assert.Len(t, cfg.Baseload, 24)
	for _, v := range append(append([]float64{}, cfg.Prices...), cfg.Baseload...) {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
