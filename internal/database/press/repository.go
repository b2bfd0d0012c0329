// Package press provides database operations for migrated press items.
package press

import (
	"gorm.io/gorm"

	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

// Repository handles all press_items table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new press repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a press item row. Duplicates from re-runs are expected; the
// two reconstruction paths upstream are never deduplicated either.
func (r *Repository) Create(item *entities.PressItem) error {
	return r.db.Create(item).Error
}

// ListRecent returns press items newest-first by insertion time.
func (r *Repository) ListRecent() ([]entities.PressItem, error) {
	var items []entities.PressItem
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

// Count returns the number of press item rows.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.PressItem{}).Count(&count).Error
	return count, err
}
