package flagpost

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/maps"
)

// validateRequest checks an evaluation request before any I/O. Checks run
// in a fixed order and the first failure wins.
func validateRequest(req EvaluationRequest, requireFlag bool) error {
	if requireFlag && req.Flag == "" {
		return ValidationError{msg: "Flag is required"}
	}
	if req.Environment == "" {
		return ValidationError{msg: "Environment is required"}
	}
	if req.User.ID == "" {
		return ValidationError{msg: "User ID is required"}
	}
	return nil
}

// execute runs the retry loop for one evaluation call: up to
// cfg.retry.Attempts POSTs to endpoint, each under its own timeout, with a
// fixed delay between attempts. A success response is decoded into out.
//
// Transport errors, timeouts and non-2xx responses are retried; a success
// response with an undecodable body is terminal.
func (c *Client) execute(ctx context.Context, cfg config, requestID, endpoint, errPrefix string, body EvaluationRequest, out any) error {
	headers := map[string]string{
		"Content-Type": "application/json",
		"x-api-key":    cfg.apiKey,
	}
	// Custom headers win on collision.
	maps.Copy(headers, cfg.customHeaders)
	url := cfg.baseURL + endpoint

	var lastErr error
	for attempt := 1; attempt <= cfg.retry.Attempts; attempt++ {
		var hint time.Duration

		resp, err := c.attempt(ctx, cfg.timeout, url, headers, body)
		switch {
		case err != nil:
			lastErr = APIError{
				msg:   fmt.Sprintf("%s: %v", errPrefix, err),
				cause: err,
			}
		case resp.IsSuccess():
			c.checkAPIVersion(resp.Header())
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return ResponseFormatError{
					msg:   fmt.Sprintf("%s: invalid response body: %v", errPrefix, err),
					cause: err,
				}
			}
			return nil
		default:
			c.checkAPIVersion(resp.Header())
			lastErr = APIError{
				StatusCode: resp.StatusCode(),
				msg:        errPrefix + ": " + extractErrorDetail(resp.Body()),
			}
			hint = retryAfterHint(resp.StatusCode(), resp.Header())
		}

		if cfg.debug {
			c.logger().Debug("evaluation attempt failed",
				"request_id", requestID,
				"attempt", attempt,
				"max_attempts", cfg.retry.Attempts,
				"error", lastErr,
			)
		}
		if attempt == cfg.retry.Attempts {
			break
		}
		if err := sleepContext(ctx, max(cfg.retry.Delay, hint)); err != nil {
			break
		}
	}
	return lastErr
}

// attempt performs one network round-trip, cancelled when timeout elapses.
func (c *Client) attempt(ctx context.Context, timeout time.Duration, url string, headers map[string]string, body EvaluationRequest) (*resty.Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
}

// extractErrorDetail pulls a human-readable detail out of an error
// response body: the JSON "error" field when present, the raw text
// otherwise, with a generic fallback for empty bodies.
func extractErrorDetail(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return "Internal Server Error"
}
