package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// issuer or audience, expiry, or an unexpected signing algorithm. Callers get
// no detail about which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies short-lived access tokens. HS256 only; the
// verifier pins the algorithm, so there is no negotiation to downgrade.
type Service struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

type Claims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration, issuer, audience string) *Service {
	return &Service{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   issuer,
		audience: audience,
	}
}

func (s *Service) Sign(userID int64, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   formatSubject(userID),
			Issuer:    s.issuer,
			Audience:  jwtlib.ClaimStrings{s.audience},
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the subject user id and role.
func (s *Service) Verify(tokenStr string) (int64, string, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithAudience(s.audience),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return 0, "", ErrInvalidToken
	}

	return userID, claims.Role, nil
}
