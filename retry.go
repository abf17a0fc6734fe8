package flagpost

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/itlightning/dateparse"
)

// Cap for server-provided retry hints.
const maxRetryAfter = 1 * time.Hour

// RetryPolicy controls the attempt loop. Attempts is the total number of
// attempts, not the number of extra retries, and must be at least 1. Delay
// is the fixed wait between consecutive attempts.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

func (p RetryPolicy) validate() error {
	if p.Attempts < 1 {
		return ConfigurationError{msg: fmt.Sprintf("retry attempts must be at least 1, got %d", p.Attempts)}
	}
	if p.Delay < 0 {
		return ConfigurationError{msg: fmt.Sprintf("retry delay must not be negative, got %v", p.Delay)}
	}
	return nil
}

// retryAfterHint extracts a Retry-After hint from a throttled or
// unavailable response. The header may carry delay-seconds or any date
// form. Returns 0 when no usable hint is present.
func retryAfterHint(statusCode int, header http.Header) time.Duration {
	if statusCode != http.StatusTooManyRequests && statusCode != http.StatusServiceUnavailable {
		return 0
	}
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return min(time.Duration(seconds)*time.Second, maxRetryAfter)
	}

	if t, err := dateparse.ParseAny(value); err == nil {
		if d := time.Until(t); d > 0 {
			return min(d, maxRetryAfter)
		}
	}
	return 0
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
