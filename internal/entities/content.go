package entities

import (
	"time"
)

// StatusPublish is the only post status the pipeline retains.
const StatusPublish = "publish"

// Project is a migrated portfolio project row.
type Project struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Title         string   `gorm:"index;size:512" json:"title"`
	Slug          string   `gorm:"index;size:256" json:"slug"`
	Date          string   `gorm:"size:64" json:"date"`
	Modified      string   `gorm:"size:64" json:"modified"`
	Status        string   `gorm:"size:32" json:"status"`
	Link          string   `gorm:"size:1024" json:"link"`
	Info          string   `gorm:"type:text" json:"info"`
	Year          string   `gorm:"size:32" json:"year"`
	Category      string   `gorm:"size:128" json:"category"`
	ProjectStatus string   `gorm:"size:128" json:"project_status"`
	PhotoCredit   string   `gorm:"size:256" json:"photo_credit"`
	Images        []string `gorm:"serializer:json" json:"images"`
	SortOrder     int      `gorm:"index" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Project) TableName() string {
	return "projects"
}

// PressItem is a migrated press mention row.
type PressItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:512" json:"title"`
	Slug      string    `gorm:"size:256" json:"slug"`
	Date      string    `gorm:"size:64" json:"date"`
	Link      string    `gorm:"size:1024" json:"link"`
	Info      string    `gorm:"type:text" json:"info"`
	Category  string    `gorm:"size:128" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (PressItem) TableName() string {
	return "press_items"
}

// HomeGalleryImage is one slide of the landing-page gallery, backed by an
// object-storage upload.
type HomeGalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ImageURL  string    `gorm:"size:1024" json:"image_url"`
	SortOrder int       `gorm:"index" json:"sort_order"`
	IsDark    bool      `json:"is_dark"`
	CreatedAt time.Time `json:"created_at"`
}

func (HomeGalleryImage) TableName() string {
	return "home_gallery"
}
