package flagpost

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

// restySlogLogger implements a [resty.Logger] on top of the client's
// current [slog.Logger], so SetLogger takes effect for transport logs too.
type restySlogLogger struct {
	c *Client
}

func (s restySlogLogger) Errorf(format string, v ...interface{}) {
	s.c.logger().Error(fmt.Sprintf(format, v...))
}

func (s restySlogLogger) Warnf(format string, v ...interface{}) {
	s.c.logger().Warn(fmt.Sprintf(format, v...))
}

func (s restySlogLogger) Debugf(format string, v ...interface{}) {
	s.c.logger().Debug(fmt.Sprintf(format, v...))
}

func newRestyLogRequestMiddleware(c *Client) resty.RequestMiddleware {
	return func(_ *resty.Client, req *resty.Request) error {
		if c.debugEnabled() {
			c.logger().WithGroup("http").Debug("request",
				"method", req.Method,
				"url", req.URL,
			)
		}
		return nil
	}
}

func newRestyLogResponseMiddleware(c *Client) resty.ResponseMiddleware {
	return func(_ *resty.Client, resp *resty.Response) error {
		if !c.debugEnabled() {
			return nil
		}
		logger := c.logger().WithGroup("http").With(
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			slog.Int("status", resp.StatusCode()),
			slog.Duration("duration", resp.Time()),
			slog.Int64("content_length", resp.Size()),
		)
		if resp.IsError() {
			logger.Error("error response")
		} else {
			logger.Debug("response")
		}
		return nil
	}
}
