// Package gallery provides database operations for the home gallery.
package gallery

import (
	"gorm.io/gorm"

	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

// Repository handles all home_gallery table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new gallery repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a gallery row referencing an uploaded object URL.
func (r *Repository) Create(image *entities.HomeGalleryImage) error {
	return r.db.Create(image).Error
}

// List returns gallery rows in slide order.
func (r *Repository) List() ([]entities.HomeGalleryImage, error) {
	var images []entities.HomeGalleryImage
	err := r.db.Order("sort_order ASC").Find(&images).Error
	return images, err
}
