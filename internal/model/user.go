package model

import "time"

// Roles stored in users.role. SUPER_ADMIN may promote other users; ADMIN has
// full access to the back office; USER is a registered customer.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User represents an application user record as stored in the `users` table.
// Numeric auto-increment ids are kept here (unlike the submission entities)
// because users are only ever created through the database.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password, never serialized.
//  Role         – USER, ADMIN or SUPER_ADMIN.
//  IsActive     – whether the account is active.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether s is a known user role.
func ValidRole(s string) bool {
	switch s {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user; only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
