package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"SignalStories/pkg/logger"
	"SignalStories/pkg/metrics"
)

// Metrics records request metrics labelled by the route template to keep
// cardinality low, and warns on requests slower than slowThreshold.
func Metrics(rec *metrics.Recorder, l *logger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			done := rec.RequestStarted(route, method)
			defer done()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start)
			res := c.Response()
			rec.RecordRequest(route, method, res.Status, duration.Seconds(), res.Size)

			if slowThreshold > 0 && duration >= slowThreshold {
				l.Warn("http request slow",
					logger.String("route", route),
					logger.String("method", method),
					logger.Int("status", res.Status),
					logger.Duration("duration_ms", duration),
				)
			}
			return nil
		}
	}
}
