package auth

import (
	"context"
	"time"

	"petcare/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	RecordLoginFailure(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error
	ResetLockout(ctx context.Context, id int64) error
}

// SessionRepositoryInterface — the session store contract. Raw tokens go in,
// only hashes are persisted behind it.
type SessionRepositoryInterface interface {
	Create(ctx context.Context, userID int64, userAgent, ip string) (string, error)
	FindActive(ctx context.Context, raw string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID int64) error
	Rotate(ctx context.Context, sessionID int64, currentHash string) (string, error)
}

type tokenSigner interface {
	Sign(userID int64, role string) (string, error)
}
