// internal/infra/upstream/vessel_client.go

// Package upstream implements the HTTP clients for the three collaborator
// services the aggregator fans in: vessel state, marine snapshot and
// narrative generation.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"vessel_briefing_bot/internal/domain/vessel"
)

// HTTPVesselClient fetches the current vessel state. This is a mandatory
// source: the caller aborts the whole report when it fails.
type HTTPVesselClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPVesselClient(baseURL string, client *http.Client) *HTTPVesselClient {
	return &HTTPVesselClient{baseURL: trimBase(baseURL), client: client}
}

func (c *HTTPVesselClient) FetchState(ctx context.Context) (*vessel.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/vessel/state", nil)
	if err != nil {
		return nil, fmt.Errorf("building vessel state request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching vessel state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vessel state endpoint returned status %d", resp.StatusCode)
	}

	state := &vessel.State{}
	if err := json.NewDecoder(resp.Body).Decode(state); err != nil {
		return nil, fmt.Errorf("decoding vessel state: %w", err)
	}
	return state, nil
}
