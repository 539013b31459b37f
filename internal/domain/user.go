package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal    AuthProvider = "LOCAL"
	ProviderGoogle   AuthProvider = "GOOGLE"
	ProviderFacebook AuthProvider = "FACEBOOK"
)

type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email" validate:"required,email"`
	PasswordHash string       `json:"-"`
	Role         UserRole     `json:"role"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Provider     AuthProvider `json:"provider"`
	ProviderID   string       `json:"-"`

	// Lockout state, mutated only by login attempts.
	FailedLoginAttempts int        `json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	LockedUntil         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Locked reports whether the account is still inside a lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
