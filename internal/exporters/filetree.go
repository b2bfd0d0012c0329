// Package exporters persists extracted entities to the intermediate file
// tree consumed by the store loader.
package exporters

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/atelierdv/portfolio-migrator/internal/assets"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

// Extension used when an image URL carries none.
const defaultImageExtension = ".png"

// FileTreeExporter writes one directory per project (record JSON plus
// downloaded gallery images) and one JSON file per press item.
type FileTreeExporter struct {
	baseDir    string
	downloader *assets.Downloader
}

// ExportResult summarizes one export run. Image failures are per-asset and do
// not remove their project record.
type ExportResult struct {
	ProjectsSaved    int
	PressItemsSaved  int
	ImagesDownloaded int
	ImagesFailed     int
}

func NewFileTreeExporter(baseDir string, downloader *assets.Downloader) *FileTreeExporter {
	return &FileTreeExporter{
		baseDir:    baseDir,
		downloader: downloader,
	}
}

// Export persists all retained entities. Directory layout:
//
//	<base>/projects/<slug>/<slug>.json
//	<base>/projects/<slug>/image<N><ext>
//	<base>/press/<slug|id>.json
func (e *FileTreeExporter) Export(projects []wordpress.Project, pressItems []wordpress.PressItem) (*ExportResult, error) {
	result := &ExportResult{}

	if err := os.MkdirAll(e.ProjectsDir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create projects directory: %w", err)
	}
	if err := os.MkdirAll(e.PressDir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create press directory: %w", err)
	}

	for _, project := range projects {
		downloaded, failed, err := e.exportProject(project)
		if err != nil {
			return nil, err
		}
		result.ProjectsSaved++
		result.ImagesDownloaded += downloaded
		result.ImagesFailed += failed
		fmt.Printf("Saved project: %s\n", project.Title)
	}

	for _, item := range pressItems {
		if err := e.exportPressItem(item); err != nil {
			return nil, err
		}
		result.PressItemsSaved++
		fmt.Printf("Saved press item: %s\n", item.Title)
	}

	return result, nil
}

// ProjectsDir returns the directory holding one subdirectory per project.
func (e *FileTreeExporter) ProjectsDir() string {
	return filepath.Join(e.baseDir, "projects")
}

// PressDir returns the directory holding press item records.
func (e *FileTreeExporter) PressDir() string {
	return filepath.Join(e.baseDir, "press")
}

func (e *FileTreeExporter) exportProject(project wordpress.Project) (downloaded, failed int, err error) {
	projectDir := filepath.Join(e.ProjectsDir(), project.Slug)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return 0, 0, fmt.Errorf("failed to create directory for %s: %w", project.Slug, err)
	}

	recordPath := filepath.Join(projectDir, project.Slug+".json")
	if err := writeJSON(recordPath, project); err != nil {
		return 0, 0, err
	}

	// Downloads are strictly sequential; each failure is final for that image
	// and leaves the rest of the gallery untouched.
	for i, imageURL := range project.Images {
		destPath := filepath.Join(projectDir, imageFilename(i+1, imageURL))
		if err := e.downloader.Fetch(imageURL, destPath); err != nil {
			log.Printf("Failed to download %s: %v", imageURL, err)
			failed++
			continue
		}
		downloaded++
	}

	return downloaded, failed, nil
}

func (e *FileTreeExporter) exportPressItem(item wordpress.PressItem) error {
	name := item.Slug
	if name == "" {
		name = item.ID
	}

	return writeJSON(filepath.Join(e.PressDir(), name+".json"), item)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// imageFilename builds the deterministic per-project image name
// ("image3.jpg"), defaulting the extension when the URL path carries none.
func imageFilename(index int, imageURL string) string {
	if i := strings.IndexAny(imageURL, "?#"); i >= 0 {
		imageURL = imageURL[:i]
	}
	ext := path.Ext(imageURL)
	if ext == "" {
		ext = defaultImageExtension
	}
	return fmt.Sprintf("image%d%s", index, ext)
}
