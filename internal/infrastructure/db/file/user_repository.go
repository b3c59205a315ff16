package file

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

type fileUser struct {
	ID        objectID `json:"_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     string   `json:"roles"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// UserRepository implements ports.UserRepository on a JSON file.
type UserRepository struct {
	coll *Collection[fileUser]
	now  func() time.Time
}

func NewUserRepository(coll *Collection[fileUser]) *UserRepository {
	return &UserRepository{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// FindByIdentifier matches on email before username, so a username that
// equals another account's email never shadows that account.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	items, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, fu := range items {
		if fu.Email == identifier {
			return fu.toDomain(), nil
		}
	}
	for _, fu := range items {
		if fu.Username == identifier {
			return fu.toDomain(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, func(u fileUser) bool { return u.Email == email })
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	items, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(items))
	for _, fu := range items {
		out = append(out, fu.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := fromDomainUser(user)
	if rec.ID.OID == "" {
		rec.ID.OID = uuid.NewString()
	}

	err := r.coll.Mutate(ctx, func(items []fileUser) ([]fileUser, error) {
		if err := checkUnique(items, -1, user.Email, user.Username); err != nil {
			return nil, err
		}
		return append(items, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	var updated fileUser
	err := r.coll.Mutate(ctx, func(items []fileUser) ([]fileUser, error) {
		idx := indexOfEmail(items, email)
		if idx < 0 {
			return nil, domain.ErrUserNotFound
		}

		u := items[idx].toDomain()
		patch.Apply(u, r.now())
		if err := checkUnique(items, idx, u.Email, u.Username); err != nil {
			return nil, err
		}

		rec := fromDomainUser(u)
		rec.ID = items[idx].ID
		items[idx] = rec
		updated = rec
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) (*domain.User, error) {
	var removed fileUser
	err := r.coll.Mutate(ctx, func(items []fileUser) ([]fileUser, error) {
		idx := indexOfEmail(items, email)
		if idx < 0 {
			return nil, domain.ErrUserNotFound
		}
		removed = items[idx]
		return append(items[:idx], items[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return removed.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, match func(fileUser) bool) (*domain.User, error) {
	items, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, fu := range items {
		if match(fu) {
			return fu.toDomain(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// checkUnique reports a conflict with any record other than skip. Email is
// checked first so callers get the more specific message.
func checkUnique(items []fileUser, skip int, email, username string) error {
	for i, u := range items {
		if i != skip && u.Email == email {
			return domain.ErrEmailExists
		}
	}
	for i, u := range items {
		if i != skip && u.Username == username {
			return domain.ErrUsernameExists
		}
	}
	return nil
}

func indexOfEmail(items []fileUser, email string) int {
	for i, u := range items {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func fromDomainUser(u *domain.User) fileUser {
	return fileUser{
		ID:        objectID{OID: u.ID},
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Roles:     u.Role,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func (fu fileUser) toDomain() *domain.User {
	role := fu.Roles
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:           fu.ID.OID,
		Username:     fu.Username,
		Email:        fu.Email,
		PasswordHash: fu.Password,
		Role:         role,
		CreatedAt:    parseTime(fu.CreatedAt),
		UpdatedAt:    parseTime(fu.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC 3339 timestamps; legacy locale-formatted values
// decode to the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
