package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshTokenCookieName holds the raw refresh token; HTTP-only, path
// restricted to the auth routes, never readable by page scripts.
const RefreshTokenCookieName = "refresh_token"

type CookieConfig struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

func setRefreshCookie(c *gin.Context, cfg CookieConfig, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    value,
		Path:     cfg.Path,
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

func clearRefreshCookie(c *gin.Context, cfg CookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    "",
		Path:     cfg.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}
