package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// CreateUserInput is the admin creation payload; Role may be empty (defaults to user).
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries optional field changes. Role is honoured only for admins.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.Claims, email string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, email string) (*domain.User, error)
}
