package simulate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
	}
}

// checkHealth verifies the service is up before the run starts.
func (c *httpClient) checkHealth(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// postHeartbeat sends one heartbeat for a module.
func (c *httpClient) postHeartbeat(ctx context.Context, baseURL string, beat Beat) error {
	target := fmt.Sprintf("%s/api/modules/status/%s/heartbeat?activity=%s",
		baseURL, beat.Module, url.QueryEscape(beat.Activity))
	return c.post(ctx, target)
}

// postError injects an error state into a module.
func (c *httpClient) postError(ctx context.Context, baseURL, module, message string) error {
	target := fmt.Sprintf("%s/api/modules/status/%s/error?message=%s",
		baseURL, module, url.QueryEscape(message))
	return c.post(ctx, target)
}

func (c *httpClient) post(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}
