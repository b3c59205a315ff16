package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// SignupInput is the self-service registration payload.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Session is returned by a successful signup or login.
type Session struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, identifier, password string) (*Session, error)
	Me(ctx context.Context, identity *domain.Claims) (*domain.User, error)
	// Refresh issues a new token for user, e.g. after a profile rename.
	Refresh(user *domain.User) (string, error)
}
