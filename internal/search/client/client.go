// Package client provides the HTTP client for the Serper.dev search API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"corpintel_backend/internal/search/transport"
	"corpintel_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURL        = "https://google.serper.dev/search"
	defaultResults = 10
)

// Client is the HTTP client for the Serper.dev API. Calls are rate limited
// client-side to stay inside the plan's per-second allowance.
type Client struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a new Serper search client.
func New(apiKey string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		log:        log,
	}
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type searchResponse struct {
	Organic []transport.Result `json:"organic"`
}

// Search runs one query and returns the organic results.
func (c *Client) Search(ctx context.Context, query string) ([]transport.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchRequest{Query: query, Num: defaultResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("serper", "search", err)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parsed.Organic, nil
}
