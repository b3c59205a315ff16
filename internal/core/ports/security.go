package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// PasswordHasher is a salted one-way password transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	// IsHash reports whether stored was produced by Hash.
	IsHash(stored string) bool
}

// TokenVerifier decodes session tokens. Verify returns
// domain.ErrInvalidToken for every failure.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	TokenVerifier
	Issue(user *domain.User) (string, error)
}

// LoginLimiter throttles repeated failed logins per identifier.
type LoginLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
	Fail(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
