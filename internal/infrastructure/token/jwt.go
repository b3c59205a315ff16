// Package token issues and verifies the HS256 session tokens carried in the
// session cookie.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// DefaultTTL is the session validity window.
const DefaultTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the validity window applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(user *domain.User) (string, error) {
	if user == nil {
		return "", errors.New("issue token: nil user")
	}
	now := m.now().UTC()
	claims := sessionClaims{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify collapses signature, structure and expiry failures into
// domain.ErrInvalidToken.
func (m *Manager) Verify(raw string) (*domain.Claims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if !domain.ValidRole(claims.Role) || claims.Email == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		ID:       claims.ID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
