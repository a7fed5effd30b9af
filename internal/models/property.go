package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is a listing shown to site visitors.
type Property struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"size:200;not null" json:"title"`
	Slug         string  `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description  string  `gorm:"type:text" json:"description"`
	PropertyType string  `gorm:"size:50;index" json:"property_type"`
	Price        float64 `json:"price"` // INR, 0 = price on request
	AreaSqft     float64 `json:"area_sqft"`
	Bedrooms     int     `gorm:"index" json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`

	CityID   *uint  `gorm:"index" json:"city_id"`
	AreaID   *uint  `gorm:"index" json:"area_id"`
	CityName string `gorm:"size:100" json:"city_name"`
	AreaName string `gorm:"size:100;index" json:"area_name"`
	Address  string `gorm:"size:255" json:"address"`

	PrimaryImage string                             `gorm:"type:text" json:"primary_image"`
	Gallery      datatypes.JSONSlice[GalleryImage]  `json:"gallery"`
	Videos       datatypes.JSONSlice[PropertyVideo] `json:"videos"`
	Amenities    string                             `gorm:"type:text" json:"amenities"` // comma separated

	Featured bool `gorm:"index;not null" json:"featured"`
	IsActive bool `gorm:"index;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GalleryImage struct {
	Image   string `json:"image"`
	AltText string `json:"alt_text"`
}

type PropertyVideo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

const (
	MaxGalleryImages = 10
	MaxVideos        = 5
)

// PropertyTypes is the set offered by the admin form.
var PropertyTypes = []string{
	"Apartment", "Villa", "Penthouse", "Studio", "Duplex", "Plot", "Commercial", "Office",
}
