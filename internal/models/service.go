package models

import "time"

// Service is an agency offering (buying, selling, legal help, interiors...).
type Service struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Slug          string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	ServiceType   string    `gorm:"size:100;index" json:"service_type"`
	Features      string    `gorm:"type:text" json:"features"` // comma separated
	StartingPrice *float64  `json:"starting_price"`
	IconImage     string    `gorm:"type:text" json:"icon_image"`
	DisplayOrder  int       `gorm:"index" json:"display_order"`
	Featured      bool      `gorm:"not null" json:"featured"`
	IsActive      bool      `gorm:"index;not null" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
