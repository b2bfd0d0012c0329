package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

// AuditCommand reports projects whose recorded image URLs and downloaded
// files disagree.
type AuditCommand struct {
	DataDir string
}

func NewAuditCommand() *AuditCommand {
	return &AuditCommand{}
}

// ParseFlags parses command line flags
func (cmd *AuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)

	fs.StringVar(&cmd.DataDir, "data", config.DefaultDataDir, "Directory holding the extracted file tree")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compare each project's recorded image URLs with the image files\n")
		fmt.Fprintf(os.Stderr, "actually present in its directory, and report the gaps.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s audit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s audit -data data\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the audit command
func (cmd *AuditCommand) Run() error {
	projectsDir := filepath.Join(cmd.DataDir, "projects")
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return fmt.Errorf("failed to read projects directory: %w", err)
	}

	fmt.Println("Starting image audit...")

	var totalURLs, totalMatched, totalMissing, projectCount int

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		slug := entry.Name()
		record, err := readProjectRecord(filepath.Join(projectsDir, slug, slug+".json"))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			fmt.Printf("  %s: failed to read record: %v\n", slug, err)
			continue
		}
		projectCount++

		onDisk, err := imageIndicesOnDisk(filepath.Join(projectsDir, slug))
		if err != nil {
			fmt.Printf("  %s: failed to list images: %v\n", slug, err)
			continue
		}

		matched := 0
		var missing []string
		for i, url := range record.Images {
			if onDisk[i+1] {
				matched++
			} else {
				missing = append(missing, urlBasename(url))
			}
		}

		totalURLs += len(record.Images)
		totalMatched += matched
		totalMissing += len(missing)

		fmt.Printf("  %s (%s):\n", record.Title, slug)
		fmt.Printf("    Images: %d | Matched: %d | Missing: %d\n", len(record.Images), matched, len(missing))
		if len(missing) > 0 && len(missing) <= 3 {
			fmt.Printf("    Missing files: %s\n", strings.Join(missing, ", "))
		}
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  Projects audited:   %d\n", projectCount)
	fmt.Printf("  Recorded URLs:      %d\n", totalURLs)
	fmt.Printf("  Matched on disk:    %d\n", totalMatched)
	fmt.Printf("  Missing from disk:  %d\n", totalMissing)
	if totalURLs > 0 {
		fmt.Printf("  Match percentage:   %.1f%%\n", float64(totalMatched)/float64(totalURLs)*100)
	}

	return nil
}

func readProjectRecord(path string) (*wordpress.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record wordpress.Project
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// imageIndicesOnDisk reports which image<N> files exist, any extension.
func imageIndicesOnDisk(projectDir string) (map[int]bool, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, err
	}

	indices := make(map[int]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "image") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		var index int
		if _, err := fmt.Sscanf(base, "image%d", &index); err == nil {
			indices[index] = true
		}
	}
	return indices, nil
}

func urlBasename(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
