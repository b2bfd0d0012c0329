// Package cli implements the migration subcommands dispatched from main.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atelierdv/portfolio-migrator/internal/assets"
	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/exporters"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

// ExtractCommand parses the legacy export and persists the file tree.
type ExtractCommand struct {
	DumpPath  string
	OutputDir string
}

func NewExtractCommand() *ExtractCommand {
	return &ExtractCommand{}
}

// ParseFlags parses command line flags
func (cmd *ExtractCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	fs.StringVar(&cmd.DumpPath, "file", config.DefaultDumpPath, "Path to the WordPress export XML file")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultDataDir, "Output directory for the extracted file tree")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s extract [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extract projects and press items from a WordPress export.\n\n")
		fmt.Fprintf(os.Stderr, "This command:\n")
		fmt.Fprintf(os.Stderr, "  1. Parses the export XML and builds the attachment index\n")
		fmt.Fprintf(os.Stderr, "  2. Extracts published projects and press items\n")
		fmt.Fprintf(os.Stderr, "  3. Writes JSON records and downloads gallery images\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s extract\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s extract -file export.xml -output data\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the extract command
func (cmd *ExtractCommand) Run() error {
	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	fmt.Printf("Reading export: %s\n", cmd.DumpPath)

	items, err := wordpress.ParseFile(cmd.DumpPath)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d items\n", len(items))

	attachments := wordpress.BuildAttachmentIndex(items)
	fmt.Printf("Indexed %d attachments\n", len(attachments))

	projects := wordpress.ExtractProjects(items, attachments)
	pressItems := wordpress.ExtractPressItems(items, attachments)
	fmt.Printf("Extracted %d projects, %d press items\n", len(projects), len(pressItems))

	exporter := exporters.NewFileTreeExporter(cmd.OutputDir, assets.NewDownloader())
	result, err := exporter.Export(projects, pressItems)
	if err != nil {
		return err
	}

	fmt.Printf("\nExtraction complete:\n")
	fmt.Printf("  Projects saved:    %d\n", result.ProjectsSaved)
	fmt.Printf("  Press items saved: %d\n", result.PressItemsSaved)
	fmt.Printf("  Images downloaded: %d\n", result.ImagesDownloaded)
	if result.ImagesFailed > 0 {
		fmt.Printf("  Images failed:     %d\n", result.ImagesFailed)
	}
	fmt.Printf("  Output: %s\n", cmd.OutputDir)

	return nil
}
