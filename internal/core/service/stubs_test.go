package service

import (
	"context"
	"strings"
	"sync"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	listErr error
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	r := &memUserRepo{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		r.byEmail[u.Email] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *memUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[identifier]; ok {
		return cloneUser(u), nil
	}
	for _, u := range r.byEmail {
		if u.Username == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailExists
	}
	for _, u := range r.byEmail {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameExists
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		c.ID = "id-" + c.Username
	}
	r.byEmail[c.Email] = c
	return cloneUser(c), nil
}

func (r *memUserRepo) Update(_ context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	next := cloneUser(u)
	patch.Apply(next, u.UpdatedAt)
	delete(r.byEmail, email)
	r.byEmail[next.Email] = next
	return cloneUser(next), nil
}

func (r *memUserRepo) Delete(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byEmail, email)
	return u, nil
}

// ---------------------------------------------------------------------------
// Security stubs
// ---------------------------------------------------------------------------

const fakeHashPrefix = "hashed:"

type fakeHasher struct{}

func (fakeHasher) Hash(p string) (string, error) { return fakeHashPrefix + p, nil }
func (fakeHasher) Verify(p, h string) bool       { return strings.HasPrefix(h, fakeHashPrefix) && h == fakeHashPrefix+p }
func (fakeHasher) IsHash(s string) bool          { return strings.HasPrefix(s, fakeHashPrefix) }

type fakeTokens struct {
	issued []string
}

func (f *fakeTokens) Issue(u *domain.User) (string, error) {
	tok := "token-for-" + u.Email
	f.issued = append(f.issued, tok)
	return tok, nil
}

func (f *fakeTokens) Verify(string) (*domain.Claims, error) { return nil, domain.ErrInvalidToken }

type stubLimiter struct {
	allowFn func(identifier string) (bool, error)
	fails   []string
	resets  []string
}

func (l *stubLimiter) Allow(_ context.Context, id string) (bool, error) {
	if l.allowFn != nil {
		return l.allowFn(id)
	}
	return true, nil
}

func (l *stubLimiter) Fail(_ context.Context, id string) error {
	l.fails = append(l.fails, id)
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, id string) error {
	l.resets = append(l.resets, id)
	return nil
}
