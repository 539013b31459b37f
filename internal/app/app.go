// Package app assembles repositories, services, middleware and routes into a
// runnable HTTP application. cmd/api stays a thin shell around it.
package app

import (
	"log/slog"
	"net/http"

	"petcare/internal/config"
	"petcare/internal/domain"
	"petcare/internal/middleware"
	"petcare/internal/modules/appointment"
	"petcare/internal/modules/auth"
	"petcare/internal/modules/pet"
	jwtsvc "petcare/internal/pkg/jwt"
	"petcare/internal/pkg/social"
	"petcare/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	JWT    *jwtsvc.Service
}

// Models lists every persisted type for AutoMigrate.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Session{},
		&domain.Pet{},
		&domain.Vaccine{},
		&domain.WeightLog{},
		&domain.Clinic{},
		&domain.Vet{},
		&domain.Appointment{},
	}
}

func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *App {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db, cfg.RefreshTTL())
	petRepo := repository.NewPetRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTIssuer, cfg.JWTAudience)

	verifiers := map[domain.AuthProvider]social.Verifier{
		domain.ProviderGoogle:   social.NewGoogleVerifier(),
		domain.ProviderFacebook: social.NewFacebookVerifier(),
	}

	authService := auth.NewService(userRepo, sessionRepo, jwt, verifiers)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Path:     cfg.CookiePath,
		Secure:   cfg.CookieSecure(),
		SameSite: cfg.CookieSameSite(),
		MaxAge:   int(cfg.RefreshTTL().Seconds()),
	})

	petService := pet.NewService(petRepo)
	petHandler := pet.NewHandler(petService)

	appointmentService := appointment.NewService(appointmentRepo)
	appointmentHandler := appointment.NewHandler(appointmentService)

	csrfGuard := middleware.NewCSRFGuard(cfg.CSRFSecret, cfg.CSRFCookieName(), cfg.CookieSecure(), cfg.CookieSameSite())
	globalLimit := middleware.NewRateLimiter(cfg.RateLimitGlobal)
	authLimit := middleware.NewRateLimiter(cfg.RateLimitAuth)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.CORS(cfg.FrontendOrigin),
		globalLimit.Middleware(),
		csrfGuard.Middleware(),
	)

	api := r.Group("/api")
	{
		api.GET("/csrf-token", func(c *gin.Context) {
			token, err := csrfGuard.Issue(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "INTERNAL_ERROR", "message": "Internal server error"}})
				return
			}
			c.JSON(http.StatusOK, gin.H{"csrfToken": token})
		})

		authHandler.RegisterPublicRoutes(api, authLimit.Middleware())

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(jwt))
		{
			authHandler.RegisterProtectedRoutes(protected)
			petHandler.RegisterRoutes(protected)
			appointmentHandler.RegisterRoutes(protected)
		}
	}

	return &App{Router: r, JWT: jwt}
}
