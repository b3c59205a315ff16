package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"input detail", domain.InvalidInput("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"wrapped conflict", fmt.Errorf("create: %w", domain.ErrEmailExists), http.StatusBadRequest, "Email already exists"},
		{"username conflict", domain.ErrUsernameExists, http.StatusBadRequest, "Username already exists"},
		{"event conflict", domain.ErrEventNameExists, http.StatusBadRequest, "Event with this name already exists"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"token", domain.ErrInvalidToken, http.StatusForbidden, "Invalid or expired token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"event missing", domain.ErrEventNotFound, http.StatusNotFound, "Event not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{"store failure", errors.New("file store: read: permission denied"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, body.Error)
			}
		})
	}
}
