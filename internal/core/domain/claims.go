package domain

import "time"

// Claims is the identity carried by a session token.
type Claims struct {
	ID        string
	Email     string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity holds the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
