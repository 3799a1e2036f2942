package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"SignalStories/pkg/logger"
)

// RequestLogging logs one line per request. 5xx responses log at error level.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("path", req.URL.Path),
				logger.Int("status", res.Status),
				logger.Duration("duration_ms", time.Since(start)),
				logger.Int64("bytes", res.Size),
				logger.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			if uid, ok := c.Get(UserIDKey).(string); ok {
				fields = append(fields, logger.String("uid", uid))
			}
			if res.Status >= 500 {
				l.Error("request", fields...)
			} else {
				l.Info("request", fields...)
			}
			return nil
		}
	}
}

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "uid"
