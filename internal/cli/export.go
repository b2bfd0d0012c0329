package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/database"
	"github.com/atelierdv/portfolio-migrator/internal/database/gallery"
	"github.com/atelierdv/portfolio-migrator/internal/database/press"
	"github.com/atelierdv/portfolio-migrator/internal/database/projects"
)

// ExportCommand writes the site's static data files from the database.
type ExportCommand struct {
	DatabasePath string
	OutputDir    string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.OutputDir, "output", "src/data", "Output directory for the JSON data files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export database content to the static site's JSON data files.\n\n")
		fmt.Fprintf(os.Stderr, "Writes projects.json (published, by sort position then date),\n")
		fmt.Fprintf(os.Stderr, "press.json (newest first) and home-gallery.json (by sort position).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db ./portfolio.db -output src/data\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the export command
func (cmd *ExportCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := os.MkdirAll(cmd.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Println("Exporting data...")

	projectRows, err := projects.NewRepository(db.DB).ListPublished()
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	if err := cmd.writeJSON("projects.json", projectRows); err != nil {
		return err
	}
	fmt.Printf("Exported %d projects\n", len(projectRows))

	pressRows, err := press.NewRepository(db.DB).ListRecent()
	if err != nil {
		return fmt.Errorf("failed to fetch press items: %w", err)
	}
	if err := cmd.writeJSON("press.json", pressRows); err != nil {
		return err
	}
	fmt.Printf("Exported %d press items\n", len(pressRows))

	galleryRows, err := gallery.NewRepository(db.DB).List()
	if err != nil {
		return fmt.Errorf("failed to fetch home gallery: %w", err)
	}
	if err := cmd.writeJSON("home-gallery.json", galleryRows); err != nil {
		return err
	}
	fmt.Printf("Exported %d home gallery images\n", len(galleryRows))

	fmt.Println("Export complete!")
	return nil
}

func (cmd *ExportCommand) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	path := filepath.Join(cmd.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
