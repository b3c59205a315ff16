package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

func newAuthSvc(repo *memUserRepo, limiter *stubLimiter) (*AuthService, *fakeTokens) {
	tokens := &fakeTokens{}
	var l ports.LoginLimiter
	if limiter != nil {
		l = limiter
	}
	return NewAuthService(repo, fakeHasher{}, tokens, l, zerolog.Nop()), tokens
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newAuthSvc(repo, nil)

	sess, err := svc.Signup(context.Background(), ports.SignupInput{Username: "ann", Email: "ann@x.com", Password: "Abcdef12"})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected token")
	}
	if sess.User.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", sess.User.Role)
	}

	stored, _ := repo.FindByEmail(context.Background(), "ann@x.com")
	if stored.PasswordHash != fakeHashPrefix+"Abcdef12" {
		t.Fatalf("expected hashed password, got %q", stored.PasswordHash)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc, _ := newAuthSvc(newMemUserRepo(), nil)

	_, err := svc.Signup(context.Background(), ports.SignupInput{Username: "  ", Email: "a@x.com", Password: "p"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthSvc(newMemUserRepo(), nil)
	ctx := context.Background()

	_, _ = svc.Signup(ctx, ports.SignupInput{Username: "ann", Email: "ann@x.com", Password: "Abcdef12"})
	_, err := svc.Signup(ctx, ports.SignupInput{Username: "ann2", Email: "ann@x.com", Password: "Abcdef12"})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "carol", Email: "carol@x.com", PasswordHash: fakeHashPrefix + "s3cret", Role: domain.RoleAdmin})
	limiter := &stubLimiter{}
	svc, tokens := newAuthSvc(repo, limiter)
	ctx := context.Background()

	for _, identifier := range []string{"carol", "carol@x.com"} {
		sess, err := svc.Login(ctx, identifier, "s3cret")
		if err != nil {
			t.Fatalf("login with %q: %v", identifier, err)
		}
		if sess.User.Username != "carol" || sess.Token == "" {
			t.Fatalf("unexpected session: %+v", sess)
		}
	}
	if len(tokens.issued) != 2 || len(limiter.resets) != 2 {
		t.Fatalf("expected two tokens and two resets, got %d/%d", len(tokens.issued), len(limiter.resets))
	}
}

func TestAuthService_Login_FailuresLookIdentical(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "carol", Email: "carol@x.com", PasswordHash: fakeHashPrefix + "s3cret", Role: domain.RoleUser})
	limiter := &stubLimiter{}
	svc, _ := newAuthSvc(repo, limiter)
	ctx := context.Background()

	_, wrongPass := svc.Login(ctx, "carol", "nope")
	_, unknown := svc.Login(ctx, "ghost", "s3cret")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) || !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, unknown)
	}
	if len(limiter.fails) != 2 {
		t.Fatalf("expected both failures recorded, got %v", limiter.fails)
	}
}

func TestAuthService_Login_PlaintextRecordRejected(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "old", Email: "old@x.com", PasswordHash: "legacy", Role: domain.RoleUser})
	svc, _ := newAuthSvc(repo, nil)

	if _, err := svc.Login(context.Background(), "old", "legacy"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("plaintext stored value must not authenticate, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "carol", Email: "carol@x.com", PasswordHash: fakeHashPrefix + "s3cret"})
	limiter := &stubLimiter{allowFn: func(string) (bool, error) { return false, nil }}
	svc, _ := newAuthSvc(repo, limiter)

	if _, err := svc.Login(context.Background(), "carol", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleBackendDownFailsOpen(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "carol", Email: "carol@x.com", PasswordHash: fakeHashPrefix + "s3cret"})
	limiter := &stubLimiter{allowFn: func(string) (bool, error) { return false, errors.New("redis down") }}
	svc, _ := newAuthSvc(repo, limiter)

	if _, err := svc.Login(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("expected login to proceed, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newMemUserRepo(&domain.User{Username: "ann", Email: "ann@x.com", Role: domain.RoleUser})
	svc, _ := newAuthSvc(repo, nil)

	u, err := svc.Me(context.Background(), &domain.Claims{Email: "ann@x.com"})
	if err != nil || u.Username != "ann" {
		t.Fatalf("Me: %+v %v", u, err)
	}
	if _, err := svc.Me(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
