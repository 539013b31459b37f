// Package social exchanges third-party access tokens for normalized identity
// profiles via each provider's userinfo endpoint. One attempt per call: a bad
// provider token will not become good on retry.
package social

import (
	"context"
	"errors"
)

var ErrVerificationFailed = errors.New("social token verification failed")

// Profile is the provider-independent identity shape the auth service
// consumes. Email is mandatory; everything else is best effort.
type Profile struct {
	Email      string
	FirstName  string
	LastName   string
	Avatar     string
	ProviderID string
}

type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Profile, error)
}
