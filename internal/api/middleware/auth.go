package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the verified *domain.Claims.
const IdentityKey = "identity"

// Identity returns the claims attached by Authenticate or OptionalAuth, or nil.
func Identity(c echo.Context) *domain.Claims {
	claims, _ := c.Get(IdentityKey).(*domain.Claims)
	return claims
}

// Authenticate requires a valid session token. A missing token is 401; a
// token that fails verification is 403, whatever the reason.
func Authenticate(tokens ports.TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := sessionToken(c, cookieName)
			if raw == "" {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
			}

			c.Set(IdentityKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through untouched.
func OptionalAuth(tokens ports.TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := sessionToken(c, cookieName); raw != "" {
				if claims, err := tokens.Verify(raw); err == nil {
					c.Set(IdentityKey, claims)
				}
			}
			return next(c)
		}
	}
}

// sessionToken reads the session cookie, falling back to an
// "Authorization: Bearer" header for non-browser clients.
func sessionToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
