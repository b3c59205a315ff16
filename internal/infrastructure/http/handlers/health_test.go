package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := Check{Name: "store", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	cases := []struct {
		name   string
		checks []Check
		code   int
		status string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"all healthy", []Check{ok}, http.StatusOK, "ok"},
		{"one down", []Check{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tc.checks...).Readiness(c); err != nil {
				t.Fatalf("readiness: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, body.Status)
			}
			if len(body.Dependencies) != len(tc.checks) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.checks), len(body.Dependencies))
			}
		})
	}
}
