package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Extract
		Migrate
		Database
		Storage
		Deploy
		Auth
		Freshness
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Extract struct {
		DumpPath string // Path to the WordPress export XML
		DataDir  string // Root of the persisted file tree
	}
	Migrate struct {
		AssetsDir     string   // Flat directory of home-gallery images
		FeaturedTitle string   // Title substring that is pinned to sort_order 0
		DarkImages    []string // Gallery filenames rendered with light-on-dark text
	}
	Database struct {
		Path string
	}
	Storage struct {
		Bucket    string
		Region    string
		Endpoint  string // Optional, for S3-compatible backends (e.g. MinIO, Supabase)
		PathStyle bool
	}
	Deploy struct {
		HookURL   string // Deploy hook to POST for a rebuild
		APIToken  string // Provider API token for deployment status lookups
		ProjectID string
	}
	Auth struct {
		PasswordHash    string // bcrypt hash of the admin password
		SessionLifetime time.Duration
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Freshness struct {
		CheckSchedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("dump_path", DefaultDumpPath)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("assets_dir", DefaultAssetsDir)
	v.SetDefault("featured_title", DefaultFeaturedTitle)
	v.SetDefault("dark_images", DefaultDarkImages)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("storage_bucket", "")
	v.SetDefault("storage_region", "us-east-1")
	v.SetDefault("storage_endpoint", "")
	v.SetDefault("storage_path_style", false)
	v.SetDefault("deploy_hook_url", "")
	v.SetDefault("deploy_api_token", "")
	v.SetDefault("deploy_project_id", "")

	// Auth defaults
	v.SetDefault("auth_password_hash", "")
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_secure_cookies", true)

	// Freshness check defaults
	v.SetDefault("freshness_check_schedule", "*/15 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Extract: Extract{
			DumpPath: v.GetString("DUMP_PATH"),
			DataDir:  v.GetString("DATA_DIR"),
		},
		Migrate: Migrate{
			AssetsDir:     v.GetString("ASSETS_DIR"),
			FeaturedTitle: v.GetString("FEATURED_TITLE"),
			DarkImages:    v.GetStringSlice("DARK_IMAGES"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			PathStyle: v.GetBool("STORAGE_PATH_STYLE"),
		},
		Deploy: Deploy{
			HookURL:   v.GetString("DEPLOY_HOOK_URL"),
			APIToken:  v.GetString("DEPLOY_API_TOKEN"),
			ProjectID: v.GetString("DEPLOY_PROJECT_ID"),
		},
		Auth: Auth{
			PasswordHash:    v.GetString("AUTH_PASSWORD_HASH"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Freshness: Freshness{
			CheckSchedule: v.GetString("FRESHNESS_CHECK_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
