package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/junior13sam/DynamicGens/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Read surface (public)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens", handler.ListTokens)
		v1.GET("/tokens/:id/owner", handler.GetOwner)
		v1.GET("/tokens/:id/uri", handler.GetURI)
		v1.GET("/tokens/:id/history", handler.GetHistory)
		v1.GET("/tokens/:id/cooldown", handler.GetCooldown)
		v1.GET("/stats", handler.GetStats)
		v1.GET("/changes", handler.GetChanges)
		v1.GET("/balances/:identity", handler.GetBalance)

		// Lifecycle operations (requires authentication; the JWT subject is
		// the acting identity)
		auth := v1.Group("", middleware.Auth(authCfg))
		{
			auth.POST("/tokens/mint", handler.Mint)
			auth.POST("/tokens/breed", handler.Breed)
			auth.POST("/tokens/:id/evolve", handler.Evolve)
			auth.POST("/tokens/:id/transfer", handler.Transfer)

			// Administrative surface; the engine rejects callers other than
			// the configured administrative identity
			auth.POST("/admin/pause", handler.TogglePause)
			auth.POST("/admin/evolution", handler.ToggleEvolution)
			auth.POST("/admin/breeding", handler.ToggleBreeding)
			auth.POST("/admin/deposit", handler.Deposit)
		}
	}
}
