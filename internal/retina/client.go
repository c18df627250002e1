// Package retina is an HTTP client for the external semantic-fingerprint service.
package retina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Config configures the fingerprint service client.
type Config struct {
	// Endpoint is the service base URL, e.g. "https://api.cortical.io/rest".
	Endpoint string
	// RetinaName selects the retina (encoding space) to encode against.
	RetinaName string
	// APIKey authenticates requests.
	APIKey string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Client encodes text into semantic fingerprint vectors over HTTP.
// It is safe for concurrent use.
type Client struct {
	endpoint   string
	retina     string
	apiKey     string
	client     *http.Client
	maxRetries int
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("retina endpoint is required")
	}
	if cfg.RetinaName == "" {
		return nil, fmt.Errorf("retina name is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("retina API key is required")
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		retina:     cfg.RetinaName,
		apiKey:     cfg.APIKey,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
	}, nil
}

type fingerprintRequest struct {
	Text string `json:"text"`
}

type fingerprintResponse struct {
	Fingerprint []float32 `json:"fingerprint"`
}

// Encode returns the fingerprint vector for text. Rate-limit and server
// errors are retried with exponential backoff, honoring Retry-After.
func (c *Client) Encode(ctx context.Context, text string) ([]float32, error) {
	url := fmt.Sprintf("%s/retinas/%s/fingerprint", c.endpoint, c.retina)
	body, err := json.Marshal(fingerprintRequest{Text: text})
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				if werr := wait(ctx, retryDelay(attempt)); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, fmt.Errorf("fingerprint request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, convErr := strconv.Atoi(ra); convErr == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				if werr := wait(ctx, delay); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, fmt.Errorf("fingerprint request failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("fingerprint request failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		var out fingerprintResponse
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("decode fingerprint response: %w", err)
		}
		if len(out.Fingerprint) == 0 {
			return nil, fmt.Errorf("no fingerprint returned")
		}
		return out.Fingerprint, nil
	}
}

// retryDelay is exponential backoff capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
