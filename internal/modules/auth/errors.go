package auth

import "petcare/internal/pkg/apperr"

// Login and refresh failures stay deliberately vague so responses never
// reveal whether an email exists or which check failed. The lockout error is
// explicit on purpose: brute force is already defeated once it fires.
var (
	ErrEmailAlreadyExists  = apperr.New(apperr.Conflict, "EMAIL_EXISTS", "This email is already registered")
	ErrInvalidCredentials  = apperr.New(apperr.Unauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	ErrAccountLocked       = apperr.New(apperr.Forbidden, "ACCOUNT_LOCKED", "Account temporarily locked, try again later")
	ErrInvalidSession      = apperr.New(apperr.Unauthorized, "INVALID_SESSION", "Session expired")
	ErrSocialAuthFailed    = apperr.New(apperr.SocialAuthFailed, "SOCIAL_AUTH_FAILED", "Social authentication failed")
	ErrProviderUnsupported = apperr.New(apperr.BadRequest, "UNSUPPORTED_PROVIDER", "Unsupported social provider")
	ErrUserNotFound        = apperr.New(apperr.NotFound, "USER_NOT_FOUND", "User not found")
)
