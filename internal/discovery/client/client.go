// Package client talks to the external streaming email validation service.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

const (
	scoreVerified = 100
	scoreRisky    = 50

	statusSafe  = "safe"
	statusRisky = "risky"

	doneSentinel = "[DONE]"
	dataPrefix   = "data: "
)

// ValidationResult is the outcome of validating a candidate list. Score 100
// means the address was confirmed deliverable; score 50 means the best we
// found was a risky (catch-all or unverifiable) address.
type ValidationResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Score  int    `json:"score"`
}

// streamEvent is one server-sent line from the validator. The service has
// shipped both field names for the address over time, so both are accepted.
type streamEvent struct {
	Email       string `json:"email"`
	Input       string `json:"input"`
	IsReachable string `json:"is_reachable"`
}

func (e streamEvent) address() string {
	if e.Email != "" {
		return e.Email
	}
	return e.Input
}

// Validator streams candidate emails through the validation service and
// returns the best hit. It never returns an error to callers: any transport
// or protocol failure degrades to a nil result, since email discovery is a
// best-effort stage of enrichment.
type Validator struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewValidator creates a validator client from discovery configuration.
func NewValidator(cfg config.DiscoveryConfig, log *logger.Logger) *Validator {
	timeout := cfg.GetValidatorTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Validator{
		baseURL: strings.TrimRight(cfg.GetValidatorURL(), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Validate submits the candidates and consumes the result stream.
//
// The stream is read in order. The first address reported safe wins with
// score 100 and the stream is abandoned immediately. If no safe address
// arrives, the first risky address (in stream order) is returned with score
// 50. Nil means nothing usable was found, including every failure mode:
// empty input, connection errors, non-200 responses, and timeouts.
func (v *Validator) Validate(ctx context.Context, emails []string) *ValidationResult {
	if len(emails) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string][]string{"emails": emails})
	if err != nil {
		v.log.UpstreamError("validator", "marshal_request", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		v.log.UpstreamError("validator", "build_request", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.log.UpstreamError("validator", "stream_request", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.Warn("validator returned non-200", "status", resp.StatusCode)
		return nil
	}

	return v.consumeStream(resp.Body)
}

// consumeStream scans SSE lines until a safe hit, the done sentinel, or the
// stream ends. Lines that are not data frames or do not decode are skipped.
func (v *Validator) consumeStream(body io.Reader) *ValidationResult {
	var fallback *ValidationResult

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimPrefix(line, dataPrefix)
		if payload == doneSentinel {
			break
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			v.log.Debug("skipping malformed validator event", "error", err)
			continue
		}

		addr := event.address()
		if addr == "" {
			continue
		}

		switch event.IsReachable {
		case statusSafe:
			return &ValidationResult{Email: addr, Status: statusSafe, Score: scoreVerified}
		case statusRisky:
			if fallback == nil {
				fallback = &ValidationResult{Email: addr, Status: statusRisky, Score: scoreRisky}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		v.log.UpstreamError("validator", "read_stream", err)
		return nil
	}

	return fallback
}
