package listing

import (
	"errors"
	"net/url"

	"github.com/KAMASDM/naishad/internal/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/properties?property_type=&bedrooms=&area_name=&search=&featured=true&limit=
func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		props, err := Find(database.DB, ParseFilters(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch properties")
		}

		return c.JSON(fiber.Map{
			"count":   len(props),
			"results": NewPropertyResponses(props),
		})
	}
}

// GET /api/properties/search (list filters without featured/limit)
func SearchPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := ParseFilters(c)
		f.Featured = nil
		f.Limit = 0
		f.Offset = 0

		props, err := Find(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to search properties")
		}

		return c.JSON(fiber.Map{
			"count":   len(props),
			"results": NewPropertyResponses(props),
		})
	}
}

// GET /api/properties/featured
func FeaturedPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		props, err := Featured(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch featured properties")
		}
		return c.JSON(NewPropertyResponses(props))
	}
}

// GET /api/properties/:slug
func GetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := url.PathUnescape(c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid slug")
		}

		p, err := FindBySlug(database.DB, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch property")
		}

		return c.JSON(NewPropertyResponse(*p))
	}
}
