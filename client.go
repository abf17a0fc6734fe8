package flagpost

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// Client evaluates feature flags against the flagpost evaluation API.
// It is safe for concurrent use. Configuration setters are synchronous and
// take effect for calls that start after they return; an in-flight
// evaluation keeps the configuration it started with.
type Client struct {
	mu     sync.RWMutex
	config config
	log    *slog.Logger

	client         *resty.Client
	cache          *evaluationCache
	analytics      *analyticsProcessor
	analyticsCtx   context.Context
	versionWarning sync.Once
}

// NewClient creates a Client for the given API key. The key must be a
// 32 character hex string.
func NewClient(apiKey string, options ...Option) (*Client, error) {
	c := &Client{
		config: defaultConfig(apiKey),
		log:    slog.Default(),
		cache:  newEvaluationCache(),
	}

	for _, opt := range options {
		opt(c)
	}

	if err := validateAPIKey(c.config.apiKey); err != nil {
		return nil, err
	}
	base, err := parseBaseURL(c.config.baseURL)
	if err != nil {
		return nil, err
	}
	c.config.baseURL = base
	if err := c.config.retry.validate(); err != nil {
		return nil, err
	}

	if c.client == nil {
		c.client = resty.New()
	}
	c.client.
		SetHeader("User-Agent", getUserAgent()).
		SetLogger(restySlogLogger{c: c}).
		OnBeforeRequest(newRestyLogRequestMiddleware(c)).
		OnAfterResponse(newRestyLogResponseMiddleware(c))

	if c.analyticsCtx != nil {
		c.analytics = newAnalyticsProcessor(c.analyticsCtx, c, analyticsFlushInterval)
	}

	return c, nil
}

// EvaluateFlag resolves a single flag for the request's environment and
// user. Results are cached per environment/user key; a cache hit returns
// without network I/O.
func (c *Client) EvaluateFlag(ctx context.Context, req EvaluationRequest) (Flag, error) {
	if err := validateRequest(req, true); err != nil {
		return Flag{}, err
	}

	cfg := c.snapshot()
	requestID := uuid.NewString()
	key := cacheKey(req)

	if cfg.debug {
		c.logger().Debug("evaluating flag",
			"request_id", requestID,
			"flag", req.Flag,
			"environment", req.Environment,
			"user", req.User.ID,
		)
	}

	if cached, ok := c.cache.get(partitionSingle, key); ok {
		if cfg.debug {
			c.logger().Debug("returning cached flag", "request_id", requestID, "key", key)
		}
		return cached.(Flag), nil
	}

	var result Flag
	if err := c.execute(ctx, cfg, requestID, singleFlagEndpoint, "Failed to evaluate flag", req, &result); err != nil {
		return Flag{}, err
	}

	c.cache.set(partitionSingle, key, result, cfg.cacheTTL)
	if c.analytics != nil {
		c.analytics.trackEvaluation(req.Flag)
	}
	if cfg.debug {
		c.logger().Debug("flag evaluated", "request_id", requestID, "flag", result.Name, "enabled", result.Enabled)
	}
	return result, nil
}

// EvaluateFlags resolves every flag for the request's environment and
// user. The request's Flag field is ignored. Results are cached
// independently of single-flag evaluations for the same key.
func (c *Client) EvaluateFlags(ctx context.Context, req EvaluationRequest) ([]Flag, error) {
	if err := validateRequest(req, false); err != nil {
		return nil, err
	}

	cfg := c.snapshot()
	requestID := uuid.NewString()
	key := cacheKey(req)

	if cfg.debug {
		c.logger().Debug("evaluating all flags",
			"request_id", requestID,
			"environment", req.Environment,
			"user", req.User.ID,
		)
	}

	if cached, ok := c.cache.get(partitionMulti, key); ok {
		if cfg.debug {
			c.logger().Debug("returning cached flags", "request_id", requestID, "key", key)
		}
		return slices.Clone(cached.([]Flag)), nil
	}

	var result []Flag
	if err := c.execute(ctx, cfg, requestID, multiFlagEndpoint, "Failed to evaluate flags", req, &result); err != nil {
		return nil, err
	}

	c.cache.set(partitionMulti, key, slices.Clone(result), cfg.cacheTTL)
	if cfg.debug {
		c.logger().Debug("flags evaluated", "request_id", requestID, "count", len(result))
	}
	return result, nil
}

// ClearCache removes every cached evaluation from both the single-flag and
// multi-flag partitions.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// SetAPIKey replaces the API key used for subsequent calls.
func (c *Client) SetAPIKey(key string) error {
	if err := validateAPIKey(key); err != nil {
		return err
	}
	c.mu.Lock()
	c.config.apiKey = key
	c.mu.Unlock()
	return nil
}

// SetBaseURL replaces the service base URL. On error the previous base URL
// stays in effect.
func (c *Client) SetBaseURL(raw string) error {
	base, err := parseBaseURL(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.config.baseURL = base
	c.mu.Unlock()
	return nil
}

// ResetBaseURL restores the default service base URL.
func (c *Client) ResetBaseURL() {
	c.mu.Lock()
	c.config.baseURL = DefaultBaseURL
	c.mu.Unlock()
}

// SetCustomHeaders replaces the headers sent with every evaluation
// request. Custom headers win over the SDK's own headers on collision.
func (c *Client) SetCustomHeaders(headers map[string]string) {
	c.mu.Lock()
	c.config.customHeaders = maps.Clone(headers)
	c.mu.Unlock()
}

// SetRetryPolicy replaces the retry policy for subsequent calls.
func (c *Client) SetRetryPolicy(policy RetryPolicy) error {
	if err := policy.validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.config.retry = policy
	c.mu.Unlock()
	return nil
}

// SetCacheTTL sets how long cached evaluations stay valid. Zero means
// entries live until ClearCache.
func (c *Client) SetCacheTTL(ttl time.Duration) {
	c.mu.Lock()
	c.config.cacheTTL = ttl
	c.mu.Unlock()
}

// SetTimeout sets the per-attempt timeout. Zero disables it.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	c.config.timeout = timeout
	c.mu.Unlock()
}

// SetDebug toggles debug logging of the evaluation pipeline.
func (c *Client) SetDebug(enabled bool) {
	c.mu.Lock()
	c.config.debug = enabled
	c.mu.Unlock()
}

// SetLogger replaces the logger. A nil logger restores [slog.Default].
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.mu.Lock()
	c.log = logger
	c.mu.Unlock()
}

func (c *Client) logger() *slog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.log
}

func (c *Client) debugEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.debug
}

// snapshot copies the configuration for one call, so setters running
// concurrently only affect later calls.
func (c *Client) snapshot() config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg := c.config
	cfg.customHeaders = maps.Clone(c.config.customHeaders)
	return cfg
}
