package flagpost

import (
	"context"
	"sync"
	"time"
)

const analyticsFlushInterval = 10 * time.Second
const analyticsEndpoint = "/api/v1/analytics/evaluations"

// analyticsProcessor accumulates per-flag evaluation counts and flushes
// them to the service in the background. Flush failures are logged and the
// counts are kept for the next tick.
type analyticsProcessor struct {
	c *Client

	mu   sync.Mutex
	data map[string]int
}

func newAnalyticsProcessor(ctx context.Context, c *Client, interval time.Duration) *analyticsProcessor {
	p := &analyticsProcessor{
		c:    c,
		data: make(map[string]int),
	}
	go p.run(ctx, interval)
	return p
}

func (p *analyticsProcessor) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := p.flush(ctx); err != nil {
				p.c.logger().Warn("failed to send evaluation analytics", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (p *analyticsProcessor) flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.data) == 0 {
		return nil
	}

	cfg := p.c.snapshot()
	resp, err := p.c.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", cfg.apiKey).
		SetBody(p.data).
		Post(cfg.baseURL + analyticsEndpoint)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return APIError{
			StatusCode: resp.StatusCode(),
			msg:        "failed to flush analytics: " + extractErrorDetail(resp.Body()),
		}
	}

	p.data = make(map[string]int)
	return nil
}

func (p *analyticsProcessor) trackEvaluation(flag string) {
	p.mu.Lock()
	p.data[flag]++
	p.mu.Unlock()
}
