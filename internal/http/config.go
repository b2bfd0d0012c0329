package http

import (
	"github.com/atelierdv/portfolio-migrator/internal/auth"
	"github.com/atelierdv/portfolio-migrator/internal/database"
	"github.com/atelierdv/portfolio-migrator/internal/deploy"
	"github.com/atelierdv/portfolio-migrator/internal/storage"
)

// RouterConfig holds all dependencies for the HTTP router.
// Optional fields may be nil; the router skips the corresponding routes.
type RouterConfig struct {
	Database       *database.Database
	SessionManager *auth.SessionManager
	DeployService  *deploy.Service
	ObjectStore    storage.ObjectStore

	// Bcrypt hash the admin password is checked against.
	PasswordHash string

	Version string
}
