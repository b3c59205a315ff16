package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	cases := []struct {
		name     string
		identity *domain.Claims
		want     int
	}{
		{"admin allowed", &domain.Claims{Role: domain.RoleAdmin}, http.StatusOK},
		{"user forbidden", &domain.Claims{Role: domain.RoleUser}, http.StatusForbidden},
		{"no identity", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.identity != nil {
				c.Set(IdentityKey, tc.identity)
			}

			handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
