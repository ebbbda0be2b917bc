package station

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/infra/logger"
)

// Client talks to the charging station REST API.
type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

// NewClient creates a station client from the configuration.
func NewClient(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		log:     logger.New("station-client"),
	}
}

// Baseload fetches the 24-hour household baseline draw. Malformed series are
// rejected here, before the planner ever sees them.
func (c *Client) Baseload(ctx context.Context) (model.LoadProfile, error) {
	var series []float64
	if err := c.getJSON(ctx, "/baseload", &series); err != nil {
		return nil, err
	}
	load := model.LoadProfile(series)
	if err := load.Validate(); err != nil {
		return nil, err
	}
	return load, nil
}

// Prices fetches the 24-hour electricity price curve.
func (c *Client) Prices(ctx context.Context) (model.PriceProfile, error) {
	var series []float64
	if err := c.getJSON(ctx, "/priceperhour", &series); err != nil {
		return nil, err
	}
	prices := model.PriceProfile(series)
	if err := prices.Validate(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Info reads the station clock, current base load and stored battery energy.
// Malformed payloads are rejected here, like the profile series, so the
// replay loop never indexes a schedule with a bogus hour.
func (c *Client) Info(ctx context.Context) (ChargingInfo, error) {
	var info ChargingInfo
	if err := c.getJSON(ctx, "/info", &info); err != nil {
		return ChargingInfo{}, err
	}
	if err := info.Validate(); err != nil {
		return ChargingInfo{}, err
	}
	return info, nil
}

// SetCharging switches the charger relay.
func (c *Client) SetCharging(ctx context.Context, on bool) error {
	var state ChargingState
	if err := c.postJSON(ctx, "/charge", ChargingState{Charging: stateString(on)}, &state); err != nil {
		return err
	}
	if state.Charging != stateString(on) {
		return fmt.Errorf("station reported charging=%q, want %q", state.Charging, stateString(on))
	}
	return nil
}

// SetDischarging switches the discharge relay.
func (c *Client) SetDischarging(ctx context.Context, on bool) error {
	var state DischargingState
	return c.postJSON(ctx, "/discharge", DischargingState{Discharging: stateString(on)}, &state)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("station request %s: %w", req.URL.Path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		var stErr ChargingError
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &stErr) == nil && stErr.Error != "" {
			return fmt.Errorf("station %s: %s", req.URL.Path, stErr.Error)
		}
		return fmt.Errorf("station %s: status %d", req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
