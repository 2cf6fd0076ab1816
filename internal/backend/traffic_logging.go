package backend

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

func (c *Client) logTraffic(ctx context.Context, op string, req *http.Request, status int, elapsed time.Duration, err error) {
	if c.logger == nil || !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []any{
		"op", op,
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(RequestIDHeader),
		"duration", elapsed,
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, "query", req.URL.RawQuery)
	}
	if status != 0 {
		attrs = append(attrs, "status", status)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	c.logger.DebugContext(ctx, "backend traffic", attrs...)
}
