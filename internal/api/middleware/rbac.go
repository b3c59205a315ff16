package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
)

// RBAC enforces role-based access control. It must run after Authenticate:
// a request without an identity is 401, a wrong role is 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Identity(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if _, ok := allowed[claims.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
