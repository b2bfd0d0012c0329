// Package projects provides database operations for migrated projects.
package projects

import (
	"gorm.io/gorm"

	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

// Repository handles all project table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new project repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a project row. No existence check is performed: the loader
// is deliberately non-idempotent and re-runs duplicate rows.
func (r *Repository) Create(project *entities.Project) error {
	return r.db.Create(project).Error
}

// ListPublished returns published projects in display order: sort_order
// ascending, ties broken by date descending.
func (r *Repository) ListPublished() ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.
		Where("status = ?", entities.StatusPublish).
		Order("sort_order ASC").
		Order("date DESC").
		Find(&projects).Error
	return projects, err
}

// GetBySlug returns a single project by slug.
func (r *Repository) GetBySlug(slug string) (*entities.Project, error) {
	var project entities.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Count returns the number of project rows.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Project{}).Count(&count).Error
	return count, err
}
