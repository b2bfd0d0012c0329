package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/database"
	"github.com/atelierdv/portfolio-migrator/internal/database/gallery"
	"github.com/atelierdv/portfolio-migrator/internal/database/press"
	"github.com/atelierdv/portfolio-migrator/internal/database/projects"
	"github.com/atelierdv/portfolio-migrator/internal/database/settings"
	"github.com/atelierdv/portfolio-migrator/internal/deploy"
	"github.com/atelierdv/portfolio-migrator/internal/loader"
	"github.com/atelierdv/portfolio-migrator/internal/storage"
)

// MigrateCommand loads the extracted file tree into the backend store.
type MigrateCommand struct {
	DataDir       string
	AssetsDir     string
	DatabasePath  string
	FeaturedTitle string

	cfg *config.Config
}

func NewMigrateCommand() *MigrateCommand {
	return &MigrateCommand{cfg: config.NewConfig()}
}

// ParseFlags parses command line flags
func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)

	fs.StringVar(&cmd.DataDir, "data", cmd.cfg.Extract.DataDir, "Directory holding the extracted file tree")
	fs.StringVar(&cmd.AssetsDir, "assets", cmd.cfg.Migrate.AssetsDir, "Directory holding home gallery images")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.FeaturedTitle, "featured-title", cmd.cfg.Migrate.FeaturedTitle, "Title substring of the project pinned to sort position zero")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load the extracted file tree into the database and storage bucket.\n\n")
		fmt.Fprintf(os.Stderr, "This command:\n")
		fmt.Fprintf(os.Stderr, "  1. Inserts project rows in directory order with sort positions\n")
		fmt.Fprintf(os.Stderr, "  2. Inserts press rows, defaulting missing categories\n")
		fmt.Fprintf(os.Stderr, "  3. Uploads home gallery images and inserts their rows\n\n")
		fmt.Fprintf(os.Stderr, "Re-runs insert duplicate rows; reset the database first for a clean load.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s migrate\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s migrate -data data -db ./portfolio.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the migrate command
func (cmd *MigrateCommand) Run() error {
	absDataDir, err := filepath.Abs(cmd.DataDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for data: %w", err)
	}
	cmd.DataDir = absDataDir

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database: %s\n", cmd.DatabasePath)
	fmt.Printf("Data: %s\n", cmd.DataDir)

	var succeeded, failed int

	projectLoader := loader.NewProjectLoader(projects.NewRepository(db.DB), cmd.FeaturedTitle)
	projectResults, err := projectLoader.Load(filepath.Join(cmd.DataDir, "projects"))
	if err != nil {
		return err
	}
	succeeded += loader.Succeeded(projectResults)
	failed += loader.Failed(projectResults)

	pressLoader := loader.NewPressLoader(press.NewRepository(db.DB))
	pressResults, err := pressLoader.Load(filepath.Join(cmd.DataDir, "press"))
	if err != nil {
		return err
	}
	succeeded += loader.Succeeded(pressResults)
	failed += loader.Failed(pressResults)

	galleryResults, err := cmd.loadGallery(db)
	if err != nil {
		return err
	}
	succeeded += loader.Succeeded(galleryResults)
	failed += loader.Failed(galleryResults)

	if succeeded > 0 {
		deployService := deploy.NewService(settings.NewRepository(db.DB), cmd.cfg.Deploy)
		if err := deployService.MarkContentModified(); err != nil {
			return fmt.Errorf("failed to record content change: %w", err)
		}
	}

	fmt.Printf("\nMigration complete: %d records migrated", succeeded)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()

	return nil
}

// loadGallery uploads the home gallery when both the assets directory and the
// storage bucket are present. A missing directory skips the stage; a missing
// bucket with the directory present is a configuration error.
func (cmd *MigrateCommand) loadGallery(db *database.Database) ([]loader.Result, error) {
	if _, err := os.Stat(cmd.AssetsDir); os.IsNotExist(err) {
		fmt.Printf("No %s directory found, skipping home gallery\n", cmd.AssetsDir)
		return nil, nil
	}

	if cmd.cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured; set STORAGE_BUCKET to migrate the home gallery")
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cmd.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	galleryLoader := loader.NewGalleryLoader(store, gallery.NewRepository(db.DB), cmd.cfg.Migrate.DarkImages)
	return galleryLoader.Load(ctx, cmd.AssetsDir)
}
