package listing

import (
	"fmt"
	"strings"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
)

func findProperty(c *fiber.Ctx) (*models.Property, error) {
	var p models.Property
	if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
	}
	return &p, nil
}

// GET /api/admin/properties?q=&is_active=
func AdminListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Property{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("LOWER(title) LIKE ?", likePattern(q))
		}
		switch c.Query("is_active") {
		case "true":
			dbq = dbq.Where("is_active = ?", true)
		case "false":
			dbq = dbq.Where("is_active = ?", false)
		}

		var props []models.Property
		if err := dbq.Order("created_at DESC, id DESC").Find(&props).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list properties")
		}
		return c.JSON(NewPropertyResponses(props))
	}
}

// GET /api/admin/properties/:id
func AdminGetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := findProperty(c)
		if err != nil {
			return err
		}
		return c.JSON(NewPropertyResponse(*p))
	}
}

// POST /api/admin/properties
func CreatePropertyHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Title == nil || body.Description == nil || body.PropertyType == nil || body.Price == nil ||
			strings.TrimSpace(*body.Description) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title, description, property type and price are required")
		}

		p := models.Property{IsActive: true}
		if err := body.apply(&p); err != nil {
			return err
		}

		if p.Slug == "" {
			slug, err := database.UniqueSlug(database.DB, &models.Property{}, format.Slugify(p.Title), 0)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate slug")
			}
			p.Slug = slug
		} else if taken, err := database.SlugTaken(database.DB, &models.Property{}, p.Slug, 0); err != nil || taken {
			return fiber.NewError(fiber.StatusConflict, "A property with this slug already exists")
		}
		if err := body.storeImages(&p, store); err != nil {
			return err
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create property")
		}

		audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionCreate,
			fmt.Sprintf("Property created: %s", p.Title), nil, p)

		return c.Status(fiber.StatusCreated).JSON(NewPropertyResponse(p))
	}
}

// PUT /api/admin/properties/:id
func UpdatePropertyHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := findProperty(c)
		if err != nil {
			return err
		}
		before := *p

		var body PropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := body.apply(p); err != nil {
			return err
		}
		if p.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Slug cannot be empty")
		}
		if p.Slug != before.Slug {
			if taken, err := database.SlugTaken(database.DB, &models.Property{}, p.Slug, p.ID); err != nil || taken {
				return fiber.NewError(fiber.StatusConflict, "A property with this slug already exists")
			}
		}
		if err := body.storeImages(p, store); err != nil {
			return err
		}

		if err := database.DB.Save(p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionUpdate,
			fmt.Sprintf("Property updated: %s", p.Title), before, *p)

		return c.JSON(NewPropertyResponse(*p))
	}
}

// PATCH /api/admin/properties/:id/toggle?field=featured|is_active
func TogglePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := findProperty(c)
		if err != nil {
			return err
		}
		before := *p

		field := c.Query("field")
		switch field {
		case "featured":
			p.Featured = !p.Featured
		case "is_active":
			p.IsActive = !p.IsActive
		default:
			return fiber.NewError(fiber.StatusBadRequest, "field must be 'featured' or 'is_active'")
		}

		if err := database.DB.Save(p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionUpdate,
			fmt.Sprintf("Property %s toggled: %s", field, p.Title), before, *p)

		return c.JSON(NewPropertyResponse(*p))
	}
}

// DELETE /api/admin/properties/:id
func DeletePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := findProperty(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.Property{}, "id = ?", p.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete property")
		}

		audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionDelete,
			fmt.Sprintf("Property deleted: %s", p.Title), *p, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
