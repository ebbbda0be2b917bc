package station

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestClientFetchesProfiles(t *testing.T) {
	sim := NewSim(SimConfig{})
	c := newTestClient(t, sim.Handler())

	load, err := c.Baseload(context.Background())
	require.NoError(t, err)
	assert.Len(t, load, model.HoursPerDay)

	prices, err := c.Prices(context.Background())
	require.NoError(t, err)
	assert.Len(t, prices, model.HoursPerDay)
}

func TestClientRejectsMalformedSeries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/baseload", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, []float64{1, 2, 3})
	})
	mux.HandleFunc("/priceperhour", func(w http.ResponseWriter, _ *http.Request) {
		series := make([]float64, model.HoursPerDay)
		series[5] = -0.2
		respondJSON(w, http.StatusOK, series)
	})
	c := newTestClient(t, mux)

	_, err := c.Baseload(context.Background())
	assert.ErrorIs(t, err, model.ErrInvalidProfile)

	_, err = c.Prices(context.Background())
	assert.ErrorIs(t, err, model.ErrInvalidProfile)
}

func TestClientRejectsMalformedInfo(t *testing.T) {
	cases := map[string]ChargingInfo{
		"hour past end of day": {SimTimeHour: model.HoursPerDay, BatteryCapacityKWh: 8},
		"negative hour":        {SimTimeHour: -1},
		"minute out of range":  {SimTimeMin: 60},
		"negative base load":   {BaseCurrentLoad: -0.5},
		"negative energy":      {BatteryCapacityKWh: -3},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
				respondJSON(w, http.StatusOK, payload)
			})
			c := newTestClient(t, mux)

			_, err := c.Info(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "station info")
		})
	}
}

func TestClientSetCharging(t *testing.T) {
	sim := NewSim(SimConfig{})
	c := newTestClient(t, sim.Handler())

	require.NoError(t, c.SetCharging(context.Background(), true))
	sim.mu.Lock()
	charging := sim.charging
	sim.mu.Unlock()
	assert.True(t, charging)

	require.NoError(t, c.SetCharging(context.Background(), false))
}

func TestClientSurfacesStationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/charge", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusBadRequest, ChargingError{Error: "relay stuck"})
	})
	c := newTestClient(t, mux)

	err := c.SetCharging(context.Background(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay stuck")
}

func TestClientInfo(t *testing.T) {
	sim := NewSim(SimConfig{})
	c := newTestClient(t, sim.Handler())

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, info.SimTimeHour, 0)
	assert.Less(t, info.SimTimeHour, model.HoursPerDay)
}

func TestClientContextCancellation(t *testing.T) {
	sim := NewSim(SimConfig{})
	c := newTestClient(t, sim.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Info(ctx)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
