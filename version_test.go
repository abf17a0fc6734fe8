package flagpost

import (
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserAgent(t *testing.T) {
	ua := getUserAgent()
	assert.True(t, strings.HasPrefix(ua, "flagpost-go-sdk/"),
		"unexpected User-Agent: %s", ua)
	assert.NotEmpty(t, strings.TrimPrefix(ua, "flagpost-go-sdk/"))
}

func TestCheckAPIVersionIgnoresCurrentAndMalformedVersions(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	client, err := NewClient(testAPIKey, WithLogger(logger))
	require.NoError(t, err)

	header := func(value string) http.Header {
		h := http.Header{}
		if value != "" {
			h.Set(apiVersionHeader, value)
		}
		return h
	}

	client.checkAPIVersion(header(""))
	client.checkAPIVersion(header("not-a-version"))
	client.checkAPIVersion(header("1.0.0"))
	client.checkAPIVersion(header("2.3.1"))

	assert.Empty(t, buf.String())

	client.checkAPIVersion(header("0.4.0"))
	assert.Contains(t, buf.String(), "older than the minimum supported")
}
