package models

import "time"

type Blog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Slug          string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Content       string    `gorm:"type:text" json:"content"` // HTML
	Excerpt       string    `gorm:"size:500" json:"excerpt"`
	Category      string    `gorm:"size:100;index" json:"category"`
	FeaturedImage string    `gorm:"type:text" json:"featured_image"`
	Author        string    `gorm:"size:100" json:"author"`
	Tags          string    `gorm:"size:500" json:"tags"` // comma separated
	Featured      bool      `gorm:"index;not null" json:"featured"`
	IsPublished   bool      `gorm:"index;not null" json:"is_published"`
	PublishedDate time.Time `gorm:"index" json:"published_date"`
	UpdatedDate   time.Time `json:"updated_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
