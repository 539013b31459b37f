package auth

import (
	"net/http"

	"petcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler owns the HTTP surface of authentication, including refresh cookie
// lifecycle. Success bodies are flat; errors use the shared error envelope.
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterPublicRoutes wires the unauthenticated auth endpoints. The strict
// rate limiter guards the credential-bearing ones.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, strictLimit gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", strictLimit, h.Register)
		authGroup.POST("/login", strictLimit, h.Login)
		authGroup.POST("/social", strictLimit, h.SocialLogin)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

// RegisterProtectedRoutes wires the endpoints behind bearer auth.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	setRefreshCookie(c, h.cookies, result.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	setRefreshCookie(c, h.cookies, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

func (h *Handler) SocialLogin(c *gin.Context) {
	var req SocialLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.SocialLogin(c.Request.Context(), req, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	setRefreshCookie(c, h.cookies, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Refresh rotates the refresh cookie and issues a new access token. Any
// failure clears the cookie: a token that failed once can never succeed.
func (h *Handler) Refresh(c *gin.Context) {
	rawToken, err := c.Cookie(RefreshTokenCookieName)
	if err != nil || rawToken == "" {
		clearRefreshCookie(c, h.cookies)
		response.Error(c, http.StatusUnauthorized, "INVALID_SESSION", "Session expired")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), rawToken)
	if err != nil {
		clearRefreshCookie(c, h.cookies)
		response.FromError(c, err)
		return
	}

	setRefreshCookie(c, h.cookies, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if rawToken, err := c.Cookie(RefreshTokenCookieName); err == nil && rawToken != "" {
		if err := h.service.Logout(c.Request.Context(), rawToken); err != nil {
			response.FromError(c, err)
			return
		}
	}

	clearRefreshCookie(c, h.cookies)
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
