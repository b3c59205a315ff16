package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// UserService is the account administration surface.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// Create adds an account with an arbitrary role; an empty role means user.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.InvalidInput("Username, email and password are required")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.InvalidInput("Invalid role")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutationsTotal.WithLabelValues("user", "create").Inc()
	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update changes the record stored under email. Non-admin actors may only
// touch their own record, and any role they send is dropped.
func (s *UserService) Update(ctx context.Context, actor *domain.Claims, email string, in ports.UpdateUserInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() && actor.Email != email {
		return nil, domain.ErrForbidden
	}

	var patch domain.UserPatch
	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if v == "" {
			return nil, domain.InvalidInput("Username cannot be empty")
		}
		patch.Username = &v
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if v == "" {
			return nil, domain.InvalidInput("Email cannot be empty")
		}
		patch.Email = &v
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.InvalidInput("Password cannot be empty")
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	if in.Role != nil && actor.IsAdmin() {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.InvalidInput("Invalid role")
		}
		role := *in.Role
		patch.Role = &role
	}

	updated, err := s.users.Update(ctx, email, patch)
	if err != nil {
		return nil, err
	}

	metrics.RecordMutationsTotal.WithLabelValues("user", "update").Inc()
	s.log.Info().Str("email", email).Str("actor", actor.Email).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, email string) (*domain.User, error) {
	removed, err := s.users.Delete(ctx, email)
	if err != nil {
		return nil, err
	}
	metrics.RecordMutationsTotal.WithLabelValues("user", "delete").Inc()
	s.log.Info().Str("email", email).Msg("user deleted")
	return removed, nil
}
