package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Cache-Control policies for shared caches in front of the API.
const (
	CacheSeries  = "s-maxage=3600, stale-while-revalidate"
	CacheEquity  = "s-maxage=900, stale-while-revalidate"
	CacheSummary = "s-maxage=1800, stale-while-revalidate"
)

// CachedResponse writes a 200 JSON body with a Cache-Control header.
func CachedResponse(c echo.Context, cacheControl string, data interface{}) error {
	if cacheControl != "" {
		c.Response().Header().Set(echo.HeaderCacheControl, cacheControl)
	}
	return c.JSON(http.StatusOK, data)
}

// RawResponse writes an already-encoded JSON payload.
func RawResponse(c echo.Context, cacheControl string, payload []byte) error {
	if cacheControl != "" {
		c.Response().Header().Set(echo.HeaderCacheControl, cacheControl)
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// AppErrorResponse writes an AppError body, or a generic 500 for any other error.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
	}
	if len(appErr.Extra) == 0 {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	body := make(map[string]interface{}, len(appErr.Extra)+1)
	for k, v := range appErr.Extra {
		body[k] = v
	}
	body["error"] = appErr.Message
	return c.JSON(appErr.Status, body)
}

// HTTPErrorHandler renders echo errors (404, 405, bind failures) with the
// same body shape as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = ErrorResponse(c, he.Code, msg)
		return
	}
	_ = AppErrorResponse(c, err)
}
