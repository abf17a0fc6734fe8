package flagpost

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/blang/semver/v4"
)

const apiVersionHeader = "X-Api-Version"

// Oldest API line this SDK is tested against. Older servers still work,
// but the client warns once so operators notice the drift.
var minAPIVersion = semver.MustParse("1.0.0")

// getUserAgent returns the User-Agent header value in the format "flagpost-go-sdk/<version>".
// If the version cannot be determined (e.g., during development), it returns "flagpost-go-sdk/unknown".
func getUserAgent() string {
	const sdkName = "flagpost-go-sdk"
	const unknownVersion = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Sprintf("%s/%s", sdkName, unknownVersion)
	}

	version := info.Main.Version
	if version == "" || version == "(devel)" {
		return fmt.Sprintf("%s/%s", sdkName, unknownVersion)
	}

	return fmt.Sprintf("%s/%s", sdkName, version)
}

// checkAPIVersion inspects the service's advertised API version and warns,
// once per client, when it predates the minimum this SDK supports.
func (c *Client) checkAPIVersion(header http.Header) {
	raw := header.Get(apiVersionHeader)
	if raw == "" {
		return
	}
	v, err := semver.ParseTolerant(raw)
	if err != nil {
		return
	}
	if v.LT(minAPIVersion) {
		c.versionWarning.Do(func() {
			c.logger().Warn("evaluation service API version is older than the minimum supported by this SDK",
				"server_version", raw,
				"min_supported", minAPIVersion.String(),
			)
		})
	}
}
