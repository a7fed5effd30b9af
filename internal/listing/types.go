package listing

import (
	"strings"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PropertyResponse struct {
	models.Property
	AmenitiesList []string `json:"amenities_list"`
	PriceDisplay  string   `json:"price_display"`
	AreaDisplay   string   `json:"area_display"`
}

func NewPropertyResponse(p models.Property) PropertyResponse {
	if p.Gallery == nil {
		p.Gallery = []models.GalleryImage{}
	}
	if p.Videos == nil {
		p.Videos = []models.PropertyVideo{}
	}
	return PropertyResponse{
		Property:      p,
		AmenitiesList: format.SplitList(p.Amenities),
		PriceDisplay:  format.Price(p.Price),
		AreaDisplay:   format.Area(p.AreaSqft),
	}
}

func NewPropertyResponses(props []models.Property) []PropertyResponse {
	res := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		res = append(res, NewPropertyResponse(p))
	}
	return res
}

// PropertyRequest is used for create and (partial) update. Nil fields are
// left untouched on update.
type PropertyRequest struct {
	Title        *string                 `json:"title"`
	Slug         *string                 `json:"slug"`
	Description  *string                 `json:"description"`
	PropertyType *string                 `json:"property_type"`
	Price        *float64                `json:"price"`
	AreaSqft     *float64                `json:"area_sqft"`
	Bedrooms     *int                    `json:"bedrooms"`
	Bathrooms    *int                    `json:"bathrooms"`
	CityID       *uint                   `json:"city_id"`
	AreaID       *uint                   `json:"area_id"`
	CityName     *string                 `json:"city_name"`
	AreaName     *string                 `json:"area_name"`
	Address      *string                 `json:"address"`
	PrimaryImage *string                 `json:"primary_image"`
	Gallery      *[]models.GalleryImage  `json:"gallery"`
	Videos       *[]models.PropertyVideo `json:"videos"`
	Amenities    *string                 `json:"amenities"`
	Featured     *bool                   `json:"featured"`
	IsActive     *bool                   `json:"is_active"`
}

// CanonicalType matches a property type case-insensitively against the known set.
func CanonicalType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	for _, known := range models.PropertyTypes {
		if strings.EqualFold(known, t) {
			return known, true
		}
	}
	return "", false
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// apply validates the request and copies everything but images onto p.
func (r *PropertyRequest) apply(p *models.Property) error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return badRequest("Title cannot be empty")
		}
		p.Title = title
	}
	if r.Slug != nil {
		p.Slug = format.Slugify(*r.Slug)
	}
	if r.Description != nil {
		p.Description = strings.TrimSpace(*r.Description)
	}
	if r.PropertyType != nil {
		t, ok := CanonicalType(*r.PropertyType)
		if !ok {
			return badRequest("Unknown property type, expected one of: " + strings.Join(models.PropertyTypes, ", "))
		}
		p.PropertyType = t
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return badRequest("Price cannot be negative")
		}
		p.Price = *r.Price
	}
	if r.AreaSqft != nil {
		if *r.AreaSqft < 0 {
			return badRequest("Area cannot be negative")
		}
		p.AreaSqft = *r.AreaSqft
	}
	if r.Bedrooms != nil {
		if *r.Bedrooms < 0 {
			return badRequest("Bedrooms cannot be negative")
		}
		p.Bedrooms = *r.Bedrooms
	}
	if r.Bathrooms != nil {
		if *r.Bathrooms < 0 {
			return badRequest("Bathrooms cannot be negative")
		}
		p.Bathrooms = *r.Bathrooms
	}

	if r.CityName != nil {
		p.CityName = strings.TrimSpace(*r.CityName)
	}
	if r.AreaName != nil {
		p.AreaName = strings.TrimSpace(*r.AreaName)
	}
	if r.CityID != nil {
		if *r.CityID == 0 {
			p.CityID = nil
		} else {
			var city models.City
			if err := database.DB.First(&city, "id = ?", *r.CityID).Error; err != nil {
				return badRequest("City not found")
			}
			p.CityID = &city.ID
			p.CityName = city.Name
		}
	}
	if r.AreaID != nil {
		if *r.AreaID == 0 {
			p.AreaID = nil
		} else {
			var area models.Area
			if err := database.DB.First(&area, "id = ?", *r.AreaID).Error; err != nil {
				return badRequest("Area not found")
			}
			p.AreaID = &area.ID
			p.AreaName = area.Name
		}
	}
	if r.Address != nil {
		p.Address = strings.TrimSpace(*r.Address)
	}
	if r.Amenities != nil {
		p.Amenities = format.JoinList(format.SplitList(*r.Amenities))
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}

	if r.Gallery != nil && len(*r.Gallery) > models.MaxGalleryImages {
		return badRequest("Maximum 10 gallery images allowed")
	}
	if r.Videos != nil {
		if len(*r.Videos) > models.MaxVideos {
			return badRequest("Maximum 5 videos allowed")
		}
		videos := make([]models.PropertyVideo, 0, len(*r.Videos))
		for _, v := range *r.Videos {
			url := strings.TrimSpace(v.URL)
			if url == "" {
				return badRequest("Video URL cannot be empty")
			}
			title := strings.TrimSpace(v.Title)
			if title == "" {
				title = "Property Video"
			}
			videos = append(videos, models.PropertyVideo{URL: url, Title: title})
		}
		p.Videos = videos
	}
	return nil
}

// storeImages writes new images to the store. Call it only once every other
// check has passed so a rejected request never leaves files behind.
func (r *PropertyRequest) storeImages(p *models.Property, store *media.Store) error {
	if r.PrimaryImage != nil {
		url, err := store.Resolve(*r.PrimaryImage, media.PrimaryImage)
		if err != nil {
			return media.HTTPError(err)
		}
		p.PrimaryImage = url
	}
	if r.Gallery != nil {
		gallery, err := store.SaveGallery(*r.Gallery, media.GalleryImage)
		if err != nil {
			return media.HTTPError(err)
		}
		p.Gallery = gallery
	}
	return nil
}
