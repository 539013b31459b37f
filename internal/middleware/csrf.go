package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"petcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CSRFHeaderName is fixed; clients always send the token here.
const CSRFHeaderName = "x-csrf-token"

const csrfCookieMaxAge = 12 * 3600

// CSRFGuard implements the double-submit pattern: the cookie carries
// "token.hmac(secret, token)" and every mutating request must repeat the
// token in the x-csrf-token header. The HMAC ties the cookie to a
// server-side secret, so an attacker cannot mint a valid pair.
type CSRFGuard struct {
	secret     []byte
	cookieName string
	secure     bool
	sameSite   http.SameSite
}

func NewCSRFGuard(secret, cookieName string, secure bool, sameSite http.SameSite) *CSRFGuard {
	return &CSRFGuard{
		secret:     []byte(secret),
		cookieName: cookieName,
		secure:     secure,
		sameSite:   sameSite,
	}
}

// Issue mints a fresh token, binds it into the cookie and returns the
// header-facing half. Callable at any time; a new token simply replaces the
// old pair.
func (g *CSRFGuard) Issue(c *gin.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     g.cookieName,
		Value:    token + "." + g.sign(token),
		Path:     "/",
		MaxAge:   csrfCookieMaxAge,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: g.sameSite,
	})
	return token, nil
}

// Middleware validates the cookie/header pair on every non-safe request.
func (g *CSRFGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if !g.validate(c.Request) {
			response.Error(c, http.StatusForbidden, "INVALID_CSRF", "CSRF token missing or invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (g *CSRFGuard) validate(r *http.Request) bool {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return false
	}

	token, mac, ok := strings.Cut(cookie.Value, ".")
	if !ok || token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(mac), []byte(g.sign(token))) != 1 {
		return false
	}

	header := r.Header.Get(CSRFHeaderName)
	return header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(token)) == 1
}

func (g *CSRFGuard) sign(token string) string {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
