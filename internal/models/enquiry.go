package models

import "time"

// Enquiry is a lead left by a visitor, usually about a specific listing.
type Enquiry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:150;index;not null" json:"email"`
	Phone            string    `gorm:"size:30" json:"phone"`
	PropertyID       *uint     `gorm:"index" json:"property_id"`
	PropertyInterest string    `gorm:"size:255" json:"property_interest"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	IsRead           bool      `gorm:"index;not null" json:"is_read"`
	IsResponded      bool      `gorm:"not null" json:"is_responded"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ContactMessage comes from the generic contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:150;index;not null" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Subject   string    `gorm:"size:200" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"index;not null" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
