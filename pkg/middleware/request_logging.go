package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// RequestLogger tags every request with an id and a request-scoped zerolog
// logger, renders handler errors in place so the logged status is the one
// sent, and counts requests by route template.
func RequestLogger(reg *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			logger := log.With().
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Logger()
			ctx := logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			class := statusClass(res.Status)
			labels := metrics.Labels{"method": req.Method, "path": route, "status": class}
			reg.Inc(ctx, metrics.HTTPRequests, labels, 1)
			if class == "5xx" {
				reg.Inc(ctx, metrics.HTTPErrors, labels, 1)
			}

			levelFor(&logger, res.Status).
				Str("route", route).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start)).
				AnErr("error", err).
				Msg("http request")

			return nil
		}
	}
}

func levelFor(l *zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.Error()
	case status >= 400:
		return l.Warn()
	default:
		return l.Info()
	}
}

// statusClass maps 204 to "2xx". Out of range codes map to "0".
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "0"
	}
	return strconv.Itoa(code/100) + "xx"
}
