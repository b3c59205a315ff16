package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/api/middleware"
	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// ctxIdentity returns the identity attached by the auth middleware. Routes
// mounted behind Authenticate can rely on it being present; anywhere else the
// absence is reported as ErrUnauthenticated.
func ctxIdentity(c echo.Context) (*domain.Claims, error) {
	claims := middleware.Identity(c)
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
