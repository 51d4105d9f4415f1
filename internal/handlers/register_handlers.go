package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/middleware"
	"github.com/SscSPs/komunity_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// authLimit rate-limits the credential endpoints and may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authLimit gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.User, services.Token, authLimit)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the authenticated /api/v1 routes.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerProfileRoutes(v1, services.Profile)
	registerCommunityRoutes(v1, services.Community)
	registerWalletRoutes(v1, services.Wallet)
	registerFundRoutes(v1, services.Fund)
}
