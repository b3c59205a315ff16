package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "u-1", Username: "ann", Email: "ann@x.com", Role: domain.RoleUser}
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret-0123456789", 0)

	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != "u-1" || claims.Email != "ann@x.com" || claims.Username != "ann" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != DefaultTTL {
		t.Fatalf("expected %s validity window, got %s", DefaultTTL, got)
	}
}

func TestManager_Verify_FailuresAreIndistinguishable(t *testing.T) {
	m := NewManager("test-secret-0123456789", time.Hour)

	other := NewManager("another-secret-9876543210", time.Hour)
	foreign, _ := other.Issue(testUser())

	expiredMgr := NewManager("test-secret-0123456789", time.Hour)
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := expiredMgr.Issue(testUser())

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "ann@x.com", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"malformed":    "not-a-token",
		"empty":        "",
		"alg none":     unsigned,
	}
	for name, raw := range cases {
		claims, err := m.Verify(raw)
		if !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
		if claims != nil {
			t.Errorf("%s: expected nil claims", name)
		}
	}
}

func TestManager_Verify_RejectsMissingExpiry(t *testing.T) {
	m := NewManager("test-secret-0123456789", time.Hour)

	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ann@x.com", "role": "user",
	}).SignedString([]byte("test-secret-0123456789"))

	if _, err := m.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without exp, got %v", err)
	}
}

func TestManager_Verify_RejectsUnknownRole(t *testing.T) {
	m := NewManager("test-secret-0123456789", time.Hour)

	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ann@x.com", "role": "superuser", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret-0123456789"))

	if _, err := m.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}
