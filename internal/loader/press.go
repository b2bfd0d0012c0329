package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelierdv/portfolio-migrator/internal/database/press"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

// Category assigned to press rows whose record carries none.
const defaultPressCategory = "Press"

// PressLoader inserts one press row per JSON record of the persisted tree.
type PressLoader struct {
	repo *press.Repository
}

func NewPressLoader(repo *press.Repository) *PressLoader {
	return &PressLoader{repo: repo}
}

// Load inserts every press record under pressDir, per-record best-effort.
func (l *PressLoader) Load(pressDir string) ([]Result, error) {
	entries, err := os.ReadDir(pressDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read press directory: %w", err)
	}

	var results []Result

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(pressDir, name))
		if err != nil {
			results = append(results, Result{Name: name, Err: err})
			continue
		}

		var record wordpress.PressItem
		if err := json.Unmarshal(data, &record); err != nil {
			log.Printf("Failed to decode press item %s: %v", name, err)
			results = append(results, Result{Name: name, Err: err})
			continue
		}

		category := record.Category
		if category == "" {
			category = defaultPressCategory
		}

		row := &entities.PressItem{
			Title:    record.Title,
			Slug:     record.Slug,
			Date:     record.Date,
			Link:     record.Link,
			Info:     record.Info,
			Category: category,
		}

		if err := l.repo.Create(row); err != nil {
			log.Printf("Failed to insert press item %s: %v", name, err)
			results = append(results, Result{Name: name, Err: err})
			continue
		}

		fmt.Printf("Migrated press: %s\n", record.Title)
		results = append(results, Result{Name: name})
	}

	return results, nil
}
