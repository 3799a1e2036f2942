package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/internal/service/ratelimit"
	xhttp "SignalStories/pkg/http"
	mw "SignalStories/pkg/http/middleware"
	"SignalStories/pkg/logger"
)

const bearerPrefix = "Bearer "

// UserKey is the echo context key holding the *models.AuthenticatedUser.
const UserKey = "user"

// RequireUser admits API requests carrying a valid bearer token. In open mode
// every request is admitted as the anonymous user and no header is needed.
func RequireUser(v domrepo.IdentityVerifier, open bool, l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var user *models.AuthenticatedUser
			if open {
				user = &models.AuthenticatedUser{UID: models.AnonymousUID}
			} else {
				header := c.Request().Header.Get(echo.HeaderAuthorization)
				if !strings.HasPrefix(header, bearerPrefix) {
					return xhttp.UnauthorizedError("Unauthorized")
				}
				u, err := v.Verify(c.Request().Context(), header[len(bearerPrefix):])
				if err != nil {
					l.Debug("token rejected", logger.String("path", c.Path()), logger.Error(err))
					return xhttp.UnauthorizedError("Unauthorized")
				}
				user = u
			}

			c.Set(UserKey, user)
			c.Set(mw.UserIDKey, user.UID)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by RequireUser.
func CurrentUser(c echo.Context) (*models.AuthenticatedUser, bool) {
	u, ok := c.Get(UserKey).(*models.AuthenticatedUser)
	return u, ok
}

// GateConfig configures PageGate.
type GateConfig struct {
	LoginPath  string
	CookieName string
	// PublicPrefixes are reachable without the cookie.
	PublicPrefixes []string
}

// DefaultPublicPrefixes covers the auth pages, the health probe and static
// assets.
var DefaultPublicPrefixes = []string{
	"/login", "/signup", "/reset-password",
	"/healthz",
	"/_next/", "/favicon", "/assets/", "/static/",
}

// PublicPrefixes returns DefaultPublicPrefixes plus the non-empty extra paths,
// such as the metrics endpoint.
func PublicPrefixes(extra ...string) []string {
	out := append([]string(nil), DefaultPublicPrefixes...)
	for _, p := range extra {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PageGate redirects page requests without the session cookie to the login
// page. API routes verify tokens themselves and are not gated here.
func PageGate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "auth-token"
	}
	if cfg.PublicPrefixes == nil {
		cfg.PublicPrefixes = DefaultPublicPrefixes
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if strings.HasPrefix(path, "/api/") || hasAnyPrefix(path, cfg.PublicPrefixes) {
				return next(c)
			}
			if ck, err := c.Cookie(cfg.CookieName); err == nil && ck.Value != "" {
				return next(c)
			}
			return c.Redirect(http.StatusTemporaryRedirect, cfg.LoginPath)
		}
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RateLimit throttles API requests per user. It runs after RequireUser.
func RateLimit(lim *ratelimit.Limiter, m domrepo.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if u, ok := CurrentUser(c); ok && u.UID != "" {
				key = u.UID
			}
			if !lim.Allow(key) {
				if m != nil {
					m.RecordRateLimited("inbound")
				}
				return xhttp.TooManyRequestsError("Too many requests")
			}
			return next(c)
		}
	}
}
