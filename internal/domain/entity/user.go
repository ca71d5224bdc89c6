package entity

import "time"

// User roles.
const (
	RoleBuyer   = "buyer"
	RoleArtisan = "artisan"
	RoleAdmin   = "admin"
)

// User represents an account that can sign in (buyer or artisan).
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, never the plain password after persisting
	Role          string
	Status        string // active | suspended
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
