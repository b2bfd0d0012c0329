// Package entrypoint boots the admin API server: database, sessions, deploy
// service, object store and the freshness scheduler.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierdv/portfolio-migrator/internal/auth"
	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/database"
	"github.com/atelierdv/portfolio-migrator/internal/database/settings"
	"github.com/atelierdv/portfolio-migrator/internal/deploy"
	http_controllers "github.com/atelierdv/portfolio-migrator/internal/http"
	"github.com/atelierdv/portfolio-migrator/internal/scheduler"
	"github.com/atelierdv/portfolio-migrator/internal/storage"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting portfolio admin API v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	if cfg.Auth.PasswordHash == "" {
		log.Printf("WARNING: Admin password hash is not set. Login will be rejected. Set 'AUTH_PASSWORD_HASH' to enable.")
	}

	deployService := deploy.NewService(settings.NewRepository(db.DB), cfg.Deploy)
	if cfg.Deploy.HookURL == "" {
		log.Printf("WARNING: Deploy hook is not configured. Deploy trigger endpoint will fail. Set 'DEPLOY_HOOK_URL' to enable.")
	}

	// Object storage is optional while serving; without it the upload
	// endpoint is not registered.
	var objectStore storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		objectStore, err = storage.New(context.Background(), cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	} else {
		log.Printf("WARNING: Storage bucket is not configured. Upload endpoint will be disabled. Set 'STORAGE_BUCKET' to enable.")
	}

	freshness := scheduler.NewFreshnessScheduler(deployService, cfg.Freshness.CheckSchedule)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := freshness.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start freshness scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		SessionManager: sessionManager,
		DeployService:  deployService,
		ObjectStore:    objectStore,
		PasswordHash:   cfg.Auth.PasswordHash,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		freshness.Stop()
		schedulerCancel()
	}

	Serve(router, cfg, onShutdown)
}
