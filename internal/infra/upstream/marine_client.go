// internal/infra/upstream/marine_client.go
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"vessel_briefing_bot/internal/domain/marine"
)

// HTTPMarineClient fetches a marine snapshot, trying each configured base
// URL in order and returning the first success. The aggregator treats any
// overall failure as an optional-source failure.
type HTTPMarineClient struct {
	baseURLs []string
	client   *http.Client
	logger   *log.Logger
}

func NewHTTPMarineClient(baseURLs []string, client *http.Client, logger *log.Logger) *HTTPMarineClient {
	trimmed := make([]string, 0, len(baseURLs))
	for _, base := range baseURLs {
		trimmed = append(trimmed, trimBase(base))
	}
	return &HTTPMarineClient{baseURLs: trimmed, client: client, logger: logger}
}

func (c *HTTPMarineClient) FetchSnapshot(ctx context.Context, port string) (*marine.Snapshot, error) {
	if len(c.baseURLs) == 0 {
		return nil, errors.New("no marine snapshot providers configured")
	}

	var lastErr error
	for _, base := range c.baseURLs {
		snap, err := c.fetchOne(ctx, base, port)
		if err == nil {
			return snap, nil
		}
		c.logger.Printf("WARN: marine snapshot fetch from %s failed: %v", base, err)
		lastErr = err
	}
	return nil, lastErr
}

func (c *HTTPMarineClient) fetchOne(ctx context.Context, base, port string) (*marine.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/api/marine/snapshot?port=%s", base, url.QueryEscape(port))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building marine snapshot request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching marine snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("marine snapshot endpoint returned status %d", resp.StatusCode)
	}

	snap := &marine.Snapshot{}
	if err := json.NewDecoder(resp.Body).Decode(snap); err != nil {
		return nil, fmt.Errorf("decoding marine snapshot: %w", err)
	}
	return snap, nil
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}
