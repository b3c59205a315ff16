package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models an account in the credential store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPatch carries the optional fields of a user update. Nil fields are left
// untouched by the repository.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil && p.Role == nil
}

// Apply copies the set fields of p onto u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	u.UpdatedAt = now
}
