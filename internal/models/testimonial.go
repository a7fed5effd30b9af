package models

import "time"

type Testimonial struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Role         string    `gorm:"size:100" json:"role"`
	Location     string    `gorm:"size:100" json:"location"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Rating       int       `json:"rating"` // 1..5
	DisplayOrder int       `gorm:"index" json:"display_order"`
	IsActive     bool      `gorm:"index;not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
