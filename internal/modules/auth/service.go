package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"petcare/internal/domain"
	"petcare/internal/pkg/password"
	"petcare/internal/pkg/social"
	"petcare/internal/repository"

	"gorm.io/gorm"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// Service orchestrates register/login/social-login/refresh/logout over the
// user store, session store and token signer.
type Service struct {
	users     UserRepositoryInterface
	sessions  SessionRepositoryInterface
	jwt       tokenSigner
	verifiers map[domain.AuthProvider]social.Verifier
}

// AuthResult bundles what every successful authentication returns. The raw
// refresh token leaves the service only here, on its way into the cookie.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	sessions SessionRepositoryInterface,
	jwt tokenSigner,
	verifiers map[domain.AuthProvider]social.Verifier,
) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		jwt:       jwt,
		verifiers: verifiers,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest, ip, ua string) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, ip, ua)
}

func (s *Service) Login(ctx context.Context, req LoginRequest, ip, ua string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Social-only accounts have no password hash; same error as unknown
	// email so nothing about the account leaks.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if user.Locked(time.Now()) {
		return nil, ErrAccountLocked
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedLoginAttempts {
			t := time.Now().Add(lockoutDuration)
			lockedUntil = &t
		}
		if err := s.users.RecordLoginFailure(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.users.ResetLockout(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(ctx, user, ip, ua)
}

// SocialLogin verifies the provider token, then finds or creates the account.
// No lockout logic applies: there is no password to brute-force.
func (s *Service) SocialLogin(ctx context.Context, req SocialLoginRequest, ip, ua string) (*AuthResult, error) {
	provider := domain.AuthProvider(strings.ToUpper(strings.TrimSpace(req.Provider)))
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, ErrProviderUnsupported
	}

	profile, err := verifier.Verify(ctx, req.Token)
	if err != nil {
		return nil, ErrSocialAuthFailed
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &domain.User{
			Email:      profile.Email,
			FirstName:  profile.FirstName,
			LastName:   profile.LastName,
			AvatarURL:  profile.Avatar,
			Role:       domain.RoleUser,
			Provider:   provider,
			ProviderID: profile.ProviderID,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, ip, ua)
}

// Refresh exchanges a raw refresh token for a new token pair. Rotation is
// single-use: the presented token is dead afterwards, and of two concurrent
// refreshes with the same token only one can win the compare-and-update.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*AuthResult, error) {
	session, err := s.sessions.FindActive(ctx, rawToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	newRaw, err := s.sessions.Rotate(ctx, session.ID, session.TokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRotationConflict) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	accessToken, err := s.jwt.Sign(session.User.ID, string(session.User.Role))
	if err != nil {
		return nil, err
	}

	user := sanitize(session.User)
	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: newRaw}, nil
}

// Logout revokes the session behind the token. Unknown tokens are not an
// error, so a second logout with the same cookie succeeds quietly.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessions.FindActive(ctx, rawToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.sessions.Revoke(ctx, session.ID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitize(user), nil
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User, ip, ua string) (*AuthResult, error) {
	refreshToken, err := s.sessions.Create(ctx, user.ID, ua, ip)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.Sign(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: sanitize(user), AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func sanitize(u *domain.User) *domain.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
