package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelierdv/portfolio-migrator/internal/database/projects"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

// ProjectLoader inserts one project row per directory of the persisted tree.
type ProjectLoader struct {
	repo          *projects.Repository
	featuredTitle string
}

// NewProjectLoader creates a project loader. featuredTitle names the one
// project pinned to sort position zero; it is a deliberate special case, not
// a general ranking rule, and stays configurable for that reason.
func NewProjectLoader(repo *projects.Repository, featuredTitle string) *ProjectLoader {
	return &ProjectLoader{
		repo:          repo,
		featuredTitle: featuredTitle,
	}
}

// Load walks projectsDir in directory-enumeration order and inserts each
// record with a strictly increasing sort_order starting at 1. The record
// whose title contains the featured-title substring gets sort_order 0
// regardless of its position. A missing projectsDir is fatal; everything else
// is per-record.
func (l *ProjectLoader) Load(projectsDir string) ([]Result, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	var results []Result
	sortOrder := 1

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		slug := entry.Name()
		recordPath := filepath.Join(projectsDir, slug, slug+".json")

		data, err := os.ReadFile(recordPath)
		if err != nil {
			if os.IsNotExist(err) {
				// Directory without a record file; nothing to load.
				continue
			}
			results = append(results, Result{Name: slug, Err: err})
			continue
		}

		var record wordpress.Project
		if err := json.Unmarshal(data, &record); err != nil {
			log.Printf("Failed to decode project %s: %v", slug, err)
			results = append(results, Result{Name: slug, Err: err})
			continue
		}

		row := &entities.Project{
			Title:         record.Title,
			Slug:          record.Slug,
			Date:          record.Date,
			Modified:      record.Modified,
			Status:        statusOrPublish(record.Status),
			Link:          record.Link,
			Info:          record.Metadata.Info,
			Year:          record.Metadata.Year,
			Category:      record.Metadata.Category,
			ProjectStatus: record.Metadata.Status,
			PhotoCredit:   record.Metadata.PhotoCredit,
			Images:        record.Images,
		}

		if l.featuredTitle != "" && strings.Contains(record.Title, l.featuredTitle) {
			row.SortOrder = 0
		} else {
			row.SortOrder = sortOrder
			sortOrder++
		}

		if err := l.repo.Create(row); err != nil {
			log.Printf("Failed to insert project %s: %v", slug, err)
			results = append(results, Result{Name: slug, Err: err})
			continue
		}

		fmt.Printf("Migrated project: %s\n", record.Title)
		results = append(results, Result{Name: slug})
	}

	return results, nil
}

func statusOrPublish(status string) string {
	if status == "" {
		return entities.StatusPublish
	}
	return status
}
