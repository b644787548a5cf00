// internal/infra/upstream/narrative_client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vessel_briefing_bot/internal/domain/briefing"
)

// HTTPNarrativeClient asks the narrative upstream to write the briefing
// text. Mandatory source: a report without its narrative is not worth
// sending.
type HTTPNarrativeClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNarrativeClient(baseURL string, client *http.Client) *HTTPNarrativeClient {
	return &HTTPNarrativeClient{baseURL: trimBase(baseURL), client: client}
}

func (c *HTTPNarrativeClient) GenerateNarrative(ctx context.Context, narrativeReq *briefing.NarrativeRequest) (string, error) {
	payload, err := json.Marshal(narrativeReq)
	if err != nil {
		return "", fmt.Errorf("encoding narrative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/briefing/narrative", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building narrative request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching narrative: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("narrative endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Narrative string `json:"narrative"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding narrative response: %w", err)
	}
	if strings.TrimSpace(body.Narrative) == "" {
		return "", errors.New("narrative response contained no text")
	}
	return body.Narrative, nil
}
