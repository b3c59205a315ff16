package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// UserRepository is the credential store. Reads return full records, hash
// included; callers strip it before anything leaves the process.
//
// Create and Update must check uniqueness and write in one atomic step so that
// racing writers cannot both pass the check.
type UserRepository interface {
	// FindByIdentifier matches identifier against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create fails with domain.ErrEmailExists or domain.ErrUsernameExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, email string) (*domain.User, error)
}
