package loader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/atelierdv/portfolio-migrator/internal/database/gallery"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
	"github.com/atelierdv/portfolio-migrator/internal/storage"
)

// GalleryLoader uploads the flat home-gallery directory to object storage
// and inserts one row per image referencing its public URL. This asset set is
// not derived from the legacy export; it rides the same loading mechanism.
type GalleryLoader struct {
	store      storage.ObjectStore
	repo       *gallery.Repository
	darkImages []string
	now        func() time.Time
}

// NewGalleryLoader creates a gallery loader. darkImages names the files that
// need the inverted (light-on-dark) text treatment on the landing page.
func NewGalleryLoader(store storage.ObjectStore, repo *gallery.Repository, darkImages []string) *GalleryLoader {
	return &GalleryLoader{
		store:      store,
		repo:       repo,
		darkImages: darkImages,
		now:        time.Now,
	}
}

// Load uploads each image under a timestamp-plus-index key and inserts a row
// in file-enumeration order. An absent assetsDir is not an error — the home
// gallery is optional. Upload and insert failures are per-file.
func (l *GalleryLoader) Load(ctx context.Context, assetsDir string) ([]Result, error) {
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No %s directory found, skipping home gallery", assetsDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read assets directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp":
			files = append(files, entry.Name())
		}
	}

	var results []Result

	for i, name := range files {
		ext := filepath.Ext(name)
		key := fmt.Sprintf("home-gallery/%d-%d%s", l.now().UnixMilli(), i, ext)

		if err := l.uploadFile(ctx, filepath.Join(assetsDir, name), key, ext); err != nil {
			log.Printf("Failed to upload %s: %v", name, err)
			results = append(results, Result{Name: name, Err: err})
			continue
		}

		row := &entities.HomeGalleryImage{
			ImageURL:  l.store.PublicURL(key),
			SortOrder: i,
			IsDark:    slices.Contains(l.darkImages, name),
		}

		if err := l.repo.Create(row); err != nil {
			log.Printf("Failed to insert %s: %v", name, err)
			results = append(results, Result{Name: name, Err: err})
			continue
		}

		fmt.Printf("Migrated home gallery: %s\n", name)
		results = append(results, Result{Name: name})
	}

	return results, nil
}

func (l *GalleryLoader) uploadFile(ctx context.Context, path, key, ext string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := "image/" + strings.TrimPrefix(strings.ToLower(ext), ".")
	return l.store.Upload(ctx, key, f, contentType)
}
