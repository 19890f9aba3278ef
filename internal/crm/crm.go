// Package crm pushes finished enrichment reports to the downstream CRM.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

// Client authenticates against the CRM and pushes enrichment payloads.
type Client struct {
	saveURL    string
	tokens     *tokenManager
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a CRM push client. Call only when CRM push is enabled in
// configuration.
func NewClient(cfg config.CRMConfig, log *logger.Logger) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Client{
		saveURL:    cfg.GetSaveEnrichmentURL(),
		tokens:     newTokenManager(cfg.GetTokenObtainURL(), cfg.GetCRMEmail(), cfg.GetCRMPassword(), httpClient),
		httpClient: httpClient,
		log:        log,
	}
}

// SaveEnrichment pushes one report to the CRM. A 401 invalidates the cached
// token and the push is retried once with a fresh one.
func (c *Client) SaveEnrichment(ctx context.Context, report any) error {
	status, err := c.push(ctx, report)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		c.tokens.mu.Lock()
		c.tokens.token = ""
		c.tokens.mu.Unlock()

		status, err = c.push(ctx, report)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return fmt.Errorf("crm returned status %d", status)
	}
	return nil
}

func (c *Client) push(ctx context.Context, report any) (int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.UpstreamError("crm", "obtain_token", err)
		return 0, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.saveURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("crm", "save_enrichment", err)
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
