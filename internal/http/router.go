// Package http wires the admin API: session-protected deploy and upload
// endpoints plus an unauthenticated health check and provider webhook.
package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	if cfg.SessionManager != nil {
		authController := NewAuthController(cfg.SessionManager, cfg.PasswordHash)
		router.POST("/api/auth/login", authController.Login)
		router.POST("/api/auth/logout", authController.Logout)
		router.GET("/api/auth/session", authController.Session)
	}

	protected := router.Group("/api")
	if cfg.SessionManager != nil {
		protected.Use(cfg.SessionManager.RequireSession())
	}

	if cfg.DeployService != nil {
		deployController := NewDeployController(cfg.DeployService)

		// Provider callback carries no session
		router.POST("/api/deploy-webhook", deployController.Webhook)

		protected.GET("/deploy", deployController.GetStatus)
		protected.POST("/deploy", deployController.Trigger)
		protected.POST("/deploy-complete", deployController.Complete)
	}

	if cfg.ObjectStore != nil {
		uploadController := NewUploadController(cfg.ObjectStore)
		protected.POST("/upload", uploadController.Upload)
	}

	return router
}
