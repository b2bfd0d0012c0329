package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelierdv/portfolio-migrator/internal/database/gallery"
	"github.com/atelierdv/portfolio-migrator/internal/database/press"
	"github.com/atelierdv/portfolio-migrator/internal/database/projects"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
	"github.com/atelierdv/portfolio-migrator/internal/wordpress"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_loader_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Project{},
		&entities.PressItem{},
		&entities.HomeGalleryImage{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func writeProjectRecord(t *testing.T, projectsDir string, project wordpress.Project) {
	t.Helper()

	dir := filepath.Join(projectsDir, project.Slug)
	require.NoError(t, os.MkdirAll(dir, 0755))

	data, err := json.MarshalIndent(project, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.Slug+".json"), data, 0644))
}

func TestProjectLoader_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	projectsDir := t.TempDir()
	record := wordpress.Project{
		ID:       "12",
		Title:    "Harbour House",
		Slug:     "harbour-house",
		Date:     "2019-03-01 10:00:00",
		Modified: "2019-04-01 09:30:00",
		Status:   "publish",
		Link:     "https://example.com/project/harbour-house/",
		Metadata: wordpress.ProjectMetadata{
			Info:        "Waterfront renovation",
			Year:        "2019",
			Category:    "Residential",
			PhotoCredit: "J. Doe",
			Status:      "Completed",
		},
		Images: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
	writeProjectRecord(t, projectsDir, record)

	repo := projects.NewRepository(db)
	results, err := NewProjectLoader(repo, "").Load(projectsDir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	row, err := repo.GetBySlug("harbour-house")
	require.NoError(t, err)

	// Every field except sort assignment survives the round trip
	assert.Equal(t, record.Title, row.Title)
	assert.Equal(t, record.Date, row.Date)
	assert.Equal(t, record.Modified, row.Modified)
	assert.Equal(t, record.Status, row.Status)
	assert.Equal(t, record.Link, row.Link)
	assert.Equal(t, record.Metadata.Info, row.Info)
	assert.Equal(t, record.Metadata.Year, row.Year)
	assert.Equal(t, record.Metadata.Category, row.Category)
	assert.Equal(t, record.Metadata.Status, row.ProjectStatus)
	assert.Equal(t, record.Metadata.PhotoCredit, row.PhotoCredit)
	assert.Equal(t, record.Images, row.Images)
}

func TestProjectLoader_FeaturedTitleGetsRankZero(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	projectsDir := t.TempDir()
	// The featured project enumerates last; it must still take rank 0.
	writeProjectRecord(t, projectsDir, wordpress.Project{Title: "Alpha House", Slug: "alpha-house"})
	writeProjectRecord(t, projectsDir, wordpress.Project{Title: "Beta Loft", Slug: "beta-loft"})
	writeProjectRecord(t, projectsDir, wordpress.Project{Title: "MD Penthouse Tower", Slug: "zz-penthouse"})

	repo := projects.NewRepository(db)
	results, err := NewProjectLoader(repo, "MD Penthouse").Load(projectsDir)
	require.NoError(t, err)
	require.Equal(t, 3, Succeeded(results))

	featured, err := repo.GetBySlug("zz-penthouse")
	require.NoError(t, err)
	assert.Equal(t, 0, featured.SortOrder)

	alpha, err := repo.GetBySlug("alpha-house")
	require.NoError(t, err)
	beta, err := repo.GetBySlug("beta-loft")
	require.NoError(t, err)

	// Remaining records keep a strictly increasing order starting at 1
	assert.Equal(t, 1, alpha.SortOrder)
	assert.Equal(t, 2, beta.SortOrder)
}

func TestProjectLoader_SecondRunDuplicatesRows(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	projectsDir := t.TempDir()
	writeProjectRecord(t, projectsDir, wordpress.Project{Title: "Villa", Slug: "villa"})

	repo := projects.NewRepository(db)
	pl := NewProjectLoader(repo, "")

	_, err := pl.Load(projectsDir)
	require.NoError(t, err)
	_, err = pl.Load(projectsDir)
	require.NoError(t, err)

	// The loader performs no existence checks: re-running without external
	// cleanup duplicates rows. This is pinned behavior, not a bug to fix.
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProjectLoader_SkipsDirWithoutRecord(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	projectsDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(projectsDir, "empty-dir"), 0755))
	writeProjectRecord(t, projectsDir, wordpress.Project{Title: "Villa", Slug: "villa"})

	repo := projects.NewRepository(db)
	results, err := NewProjectLoader(repo, "").Load(projectsDir)
	require.NoError(t, err)

	assert.Len(t, results, 1)
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPressLoader_DefaultsCategory(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	pressDir := t.TempDir()
	record := wordpress.PressItem{ID: "press_0", Title: "Feature", Slug: "press-item-0", Date: "2021"}
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(pressDir, "press-item-0.json"), data, 0644))

	repo := press.NewRepository(db)
	results, err := NewPressLoader(repo).Load(pressDir)
	require.NoError(t, err)
	require.Equal(t, 1, Succeeded(results))

	items, err := repo.ListRecent()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Press", items[0].Category)
	assert.Equal(t, "Feature", items[0].Title)
}

// fakeObjectStore records uploads in memory.
type fakeObjectStore struct {
	uploads map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://storage.example.com/images/" + key
}

func TestGalleryLoader_UploadsAndInserts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assetsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "image1.png"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "image5.png"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "notes.txt"), []byte("skip"), 0644))

	store := newFakeObjectStore()
	repo := gallery.NewRepository(db)
	gl := NewGalleryLoader(store, repo, []string{"image5.png"})
	gl.now = func() time.Time { return time.UnixMilli(1700000000000) }

	results, err := gl.Load(context.Background(), assetsDir)
	require.NoError(t, err)
	require.Equal(t, 2, Succeeded(results))

	require.Contains(t, store.uploads, "home-gallery/1700000000000-0.png")
	require.Contains(t, store.uploads, "home-gallery/1700000000000-1.png")
	assert.True(t, bytes.Equal(store.uploads["home-gallery/1700000000000-0.png"], []byte("a")))

	rows, err := repo.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "https://storage.example.com/images/home-gallery/1700000000000-0.png", rows[0].ImageURL)
	assert.Equal(t, 0, rows[0].SortOrder)
	assert.False(t, rows[0].IsDark)

	// The configured dark image carries the inverted-text flag
	assert.Equal(t, 1, rows[1].SortOrder)
	assert.True(t, rows[1].IsDark)
}

func TestGalleryLoader_MissingDirIsNotAnError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	gl := NewGalleryLoader(newFakeObjectStore(), gallery.NewRepository(db), nil)

	results, err := gl.Load(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, results)
}
