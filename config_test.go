package flagpost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAPIKey(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid lowercase hex", "0123456789abcdef0123456789abcdef", true},
		{"valid uppercase hex", "0123456789ABCDEF0123456789ABCDEF", true},
		{"too short", "0123456789abcdef", false},
		{"too long", "0123456789abcdef0123456789abcdef00", false},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAPIKey(tc.key)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorAs(t, err, &ConfigurationError{})
			}
		})
	}
}

func TestParseBaseURL(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain", "https://api.flagpost.io", "https://api.flagpost.io", true},
		{"trailing slash trimmed", "https://api.flagpost.io/", "https://api.flagpost.io", true},
		{"http allowed", "http://localhost:8080", "http://localhost:8080", true},
		{"missing scheme", "api.flagpost.io", "", false},
		{"unsupported scheme", "ftp://api.flagpost.io", "", false},
		{"garbage", "://nope", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseBaseURL(tc.raw)
			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.ErrorAs(t, err, &ConfigurationError{})
			}
		})
	}
}
