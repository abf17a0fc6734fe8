package flagpost

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// Number of seconds to wait for a single attempt to
	// complete before cancelling the request.
	DefaultTimeout = 10 * time.Second

	// Default base URL for the API.
	DefaultBaseURL = "https://api.flagpost.io"

	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1 * time.Second

	singleFlagEndpoint = "/api/v1/evaluate/flag"
	multiFlagEndpoint  = "/api/v1/evaluate/flags"
)

const apiKeyLength = 32

// config is the full client configuration. The executor snapshots it at the
// start of every call, so setter changes apply to subsequent calls only.
type config struct {
	apiKey        string
	baseURL       string
	timeout       time.Duration
	customHeaders map[string]string
	debug         bool
	retry         RetryPolicy
	cacheTTL      time.Duration
}

func defaultConfig(apiKey string) config {
	return config{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		retry: RetryPolicy{
			Attempts: DefaultRetryAttempts,
			Delay:    DefaultRetryDelay,
		},
	}
}

// validateAPIKey checks that key is a 32 character hex string.
func validateAPIKey(key string) error {
	if len(key) != apiKeyLength {
		return ConfigurationError{msg: fmt.Sprintf("API key must be %d hex characters, got %d", apiKeyLength, len(key))}
	}
	if _, err := hex.DecodeString(key); err != nil {
		return ConfigurationError{msg: "API key must be a hex string"}
	}
	return nil
}

// parseBaseURL normalizes raw into a base URL without a trailing slash.
func parseBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ConfigurationError{msg: fmt.Sprintf("invalid base URL %q: %v", raw, err)}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ConfigurationError{msg: fmt.Sprintf("invalid base URL %q: need an absolute http(s) URL", raw)}
	}
	return strings.TrimRight(u.String(), "/"), nil
}
