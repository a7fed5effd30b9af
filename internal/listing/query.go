package listing

import (
	"strconv"
	"strings"

	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	MaxLimit      = 100
	FeaturedLimit = 6
	// bedroom filter values at or above this mean "N or more" (the 5+ BHK bucket)
	bedroomsOrMore = 5
)

// Filters narrows the public property list. Zero values mean "no filter".
type Filters struct {
	PropertyType string
	Bedrooms     int
	AreaName     string
	CityName     string
	Search       string
	Featured     *bool
	MinPrice     float64
	MaxPrice     float64
	Limit        int
	Offset       int
}

// ParseFilters reads filters from the query string. Invalid numbers are ignored.
func ParseFilters(c *fiber.Ctx) Filters {
	f := Filters{
		PropertyType: strings.TrimSpace(c.Query("property_type")),
		AreaName:     strings.TrimSpace(c.Query("area_name")),
		CityName:     strings.TrimSpace(c.Query("city_name")),
		Search:       strings.TrimSpace(c.Query("search")),
	}
	if n, err := strconv.Atoi(c.Query("bedrooms")); err == nil && n > 0 {
		f.Bedrooms = n
	}
	if c.Query("featured") == "true" {
		featured := true
		f.Featured = &featured
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil && v > 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= MaxLimit {
		f.Limit = n
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n > 0 {
		f.Offset = n
	}
	return f
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// Apply adds the filters to a query over active properties.
func (f Filters) Apply(dbq *gorm.DB) *gorm.DB {
	dbq = dbq.Where("is_active = ?", true)

	if f.PropertyType != "" {
		dbq = dbq.Where("LOWER(property_type) = ?", strings.ToLower(f.PropertyType))
	}
	if f.Bedrooms >= bedroomsOrMore {
		dbq = dbq.Where("bedrooms >= ?", f.Bedrooms)
	} else if f.Bedrooms > 0 {
		dbq = dbq.Where("bedrooms = ?", f.Bedrooms)
	}
	if f.AreaName != "" {
		dbq = dbq.Where("LOWER(area_name) LIKE ?", likePattern(f.AreaName))
	}
	if f.CityName != "" {
		dbq = dbq.Where("LOWER(city_name) LIKE ?", likePattern(f.CityName))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		dbq = dbq.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(area_name) LIKE ?)", p, p, p)
	}
	if f.Featured != nil {
		dbq = dbq.Where("featured = ?", *f.Featured)
	}
	if f.MinPrice > 0 {
		dbq = dbq.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		dbq = dbq.Where("price <= ?", f.MaxPrice)
	}

	dbq = dbq.Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		dbq = dbq.Limit(f.Limit)
	}
	if f.Offset > 0 {
		dbq = dbq.Offset(f.Offset)
	}
	return dbq
}

// Find returns active properties matching f, newest first.
func Find(db *gorm.DB, f Filters) ([]models.Property, error) {
	var props []models.Property
	err := f.Apply(db.Model(&models.Property{})).Find(&props).Error
	return props, err
}

// FindBySlug returns the active property with the given slug.
func FindBySlug(db *gorm.DB, slug string) (*models.Property, error) {
	var p models.Property
	if err := db.Where("slug = ? AND is_active = ?", slug, true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Featured returns up to FeaturedLimit active featured properties.
func Featured(db *gorm.DB) ([]models.Property, error) {
	featured := true
	return Find(db, Filters{Featured: &featured, Limit: FeaturedLimit})
}
