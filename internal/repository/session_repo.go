package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

// ErrRotationConflict means the stored hash no longer matched during rotate:
// a concurrent refresh already rotated this session. The losing caller must
// treat its token as spent.
var ErrRotationConflict = errors.New("session was rotated concurrently")

// SessionRepository is the only durable session state. It stores SHA-256
// hashes of refresh tokens, never the raw values.
type SessionRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionRepository(db *gorm.DB, ttl time.Duration) *SessionRepository {
	return &SessionRepository{db: db, ttl: ttl}
}

// Create stores a new session and returns the raw refresh token for cookie
// delivery. The raw value exists only in the return path.
func (r *SessionRepository) Create(ctx context.Context, userID int64, userAgent, ip string) (string, error) {
	raw, err := generateRefreshToken()
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		UserID:    userID,
		TokenHash: hashToken(raw),
		UserAgent: userAgent,
		IPAddress: ip,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// FindActive resolves a raw token to its session iff the session is neither
// revoked nor expired. The owning user is loaded alongside. Returns
// gorm.ErrRecordNotFound for unknown, revoked and expired tokens alike.
func (r *SessionRepository) FindActive(ctx context.Context, raw string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hashToken(raw), time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, session.UserID).Error; err != nil {
		return nil, err
	}
	session.User = &user
	return &session, nil
}

// Revoke marks the session terminal. Idempotent: revoking an already revoked
// session changes nothing.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", time.Now()).Error
}

// Rotate swaps the stored hash for a fresh token and extends the expiry. The
// update is guarded by the current hash, so of two concurrent refreshes with
// the same token exactly one wins; the other gets ErrRotationConflict.
func (r *SessionRepository) Rotate(ctx context.Context, sessionID int64, currentHash string) (string, error) {
	raw, err := generateRefreshToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ? AND token_hash = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, currentHash, now).
		Updates(map[string]any{
			"token_hash": hashToken(raw),
			"expires_at": now.Add(r.ttl),
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", ErrRotationConflict
	}
	return raw, nil
}

// DeleteExpired purges sessions that can never become usable again.
func (r *SessionRepository) DeleteExpired(ctx context.Context, revokedBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", time.Now(), revokedBefore).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// HashToken exposes the token digest for callers that need to compare against
// the stored hash, such as the rotate guard.
func HashToken(raw string) string { return hashToken(raw) }
