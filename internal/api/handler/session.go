package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SessionCookies writes and clears the session cookie. The cookie is
// httpOnly and SameSite=Lax; Secure is set in production.
type SessionCookies struct {
	secure bool
	ttl    time.Duration
}

func NewSessionCookies(secure bool, ttl time.Duration) *SessionCookies {
	return &SessionCookies{secure: secure, ttl: ttl}
}

func (s *SessionCookies) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionCookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
