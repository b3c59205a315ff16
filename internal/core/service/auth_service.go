package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// AuthService implements signup, login and session lookups.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthService wires the service. A nil limiter disables login throttling.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account. The role is always forced to user.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.Session, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		recordAuth("signup", "invalid")
		return nil, domain.InvalidInput("Username, email and password are required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		recordAuth("signup", "error")
		return nil, err
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) || errors.Is(err, domain.ErrUsernameExists) {
			recordAuth("signup", "conflict")
		} else {
			recordAuth("signup", "error")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		recordAuth("signup", "error")
		return nil, err
	}

	recordAuth("signup", "success")
	metrics.RecordMutationsTotal.WithLabelValues("user", "create").Inc()
	s.log.Info().Str("username", created.Username).Msg("user signed up")
	return &ports.Session{Token: token, User: created}, nil
}

// Login verifies credentials given as username or email. Unknown identifiers
// and wrong passwords produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		recordAuth("login", "invalid")
		return nil, domain.InvalidInput("Identifier and password are required")
	}

	allowed, err := s.limiter.Allow(ctx, identifier)
	if err != nil {
		// Throttle backend down: fail open, credentials are still checked.
		s.log.Warn().Err(err).Msg("login throttle unavailable")
	} else if !allowed {
		recordAuth("login", "throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		recordAuth("login", "error")
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		if ferr := s.limiter.Fail(ctx, identifier); ferr != nil {
			s.log.Warn().Err(ferr).Msg("login throttle: record failure")
		}
		recordAuth("login", "invalid")
		return nil, domain.ErrInvalidCredentials
	}

	if rerr := s.limiter.Reset(ctx, identifier); rerr != nil {
		s.log.Warn().Err(rerr).Msg("login throttle: reset")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		recordAuth("login", "error")
		return nil, err
	}
	recordAuth("login", "success")
	return &ports.Session{Token: token, User: user}, nil
}

// Me returns the stored record behind identity.
func (s *AuthService) Me(ctx context.Context, identity *domain.Claims) (*domain.User, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByEmail(ctx, identity.Email)
}

func (s *AuthService) Refresh(user *domain.User) (string, error) {
	return s.tokens.Issue(user)
}

func recordAuth(operation, result string) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}

// NopLimiter never throttles.
type NopLimiter struct{}

func (NopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NopLimiter) Fail(context.Context, string) error          { return nil }
func (NopLimiter) Reset(context.Context, string) error         { return nil }
