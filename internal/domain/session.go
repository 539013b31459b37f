package domain

import "time"

// Session tracks one refresh-token lineage. The raw token is never stored:
// only its SHA-256 hash. Rotation overwrites TokenHash and ExpiresAt in
// place, so one row follows the lineage across refreshes.
type Session struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash string     `json:"-"`
	UserAgent string     `json:"user_agent,omitempty"`
	IPAddress string     `json:"ip_address,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	User *User `json:"-"`
}

// Active reports whether the session can still authorize a refresh.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
