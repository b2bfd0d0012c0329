package projects

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_projects_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Project{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Create_PreservesImages(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	project := &entities.Project{
		Title:  "Villa",
		Slug:   "villa",
		Status: "publish",
		Images: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
	require.NoError(t, repo.Create(project))

	loaded, err := repo.GetBySlug("villa")
	require.NoError(t, err)
	assert.Equal(t, project.Images, loaded.Images)
}

func TestRepository_ListPublished_Ordering(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Project{Title: "Second", Slug: "second", Status: "publish", SortOrder: 2}))
	require.NoError(t, repo.Create(&entities.Project{Title: "Pinned", Slug: "pinned", Status: "publish", SortOrder: 0}))
	require.NoError(t, repo.Create(&entities.Project{Title: "First", Slug: "first", Status: "publish", SortOrder: 1}))
	require.NoError(t, repo.Create(&entities.Project{Title: "Hidden", Slug: "hidden", Status: "draft", SortOrder: 3}))

	listed, err := repo.ListPublished()
	require.NoError(t, err)

	require.Len(t, listed, 3)
	assert.Equal(t, "pinned", listed[0].Slug)
	assert.Equal(t, "first", listed[1].Slug)
	assert.Equal(t, "second", listed[2].Slug)
}

func TestRepository_Create_AllowsDuplicateSlugs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Re-running the loader without cleanup duplicates rows; the store does
	// not enforce slug uniqueness.
	require.NoError(t, repo.Create(&entities.Project{Title: "Villa", Slug: "villa", Status: "publish"}))
	require.NoError(t, repo.Create(&entities.Project{Title: "Villa", Slug: "villa", Status: "publish"}))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
