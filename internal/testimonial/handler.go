package testimonial

import (
	"fmt"
	"strings"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const DefaultRating = 5

type TestimonialRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	Location     *string `json:"location"`
	Text         *string `json:"text"`
	Rating       *int    `json:"rating"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (r *TestimonialRequest) apply(t *models.Testimonial) error {
	for _, f := range []struct {
		val  *string
		dst  *string
		name string
	}{
		{r.Name, &t.Name, "Name"},
		{r.Role, &t.Role, "Role"},
		{r.Location, &t.Location, "Location"},
		{r.Text, &t.Text, "Text"},
	} {
		if f.val == nil {
			continue
		}
		v := strings.TrimSpace(*f.val)
		if v == "" {
			return fiber.NewError(fiber.StatusBadRequest, f.name+" cannot be empty")
		}
		*f.dst = v
	}
	if r.Rating != nil {
		if *r.Rating < 1 || *r.Rating > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "Rating must be between 1 and 5")
		}
		t.Rating = *r.Rating
	}
	if r.DisplayOrder != nil {
		t.DisplayOrder = *r.DisplayOrder
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	return nil
}

// Active returns visible testimonials in display order.
func Active(db *gorm.DB) ([]models.Testimonial, error) {
	list := make([]models.Testimonial, 0)
	err := db.Where("is_active = ?", true).Order("display_order ASC, id ASC").Find(&list).Error
	return list, err
}

// GET /api/testimonials
func ListTestimonialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := Active(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch testimonials")
		}
		return c.JSON(list)
	}
}

func findTestimonial(c *fiber.Ctx) (*models.Testimonial, error) {
	var t models.Testimonial
	if err := database.DB.First(&t, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Testimonial not found")
	}
	return &t, nil
}

// GET /api/admin/testimonials
func AdminListTestimonialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := make([]models.Testimonial, 0)
		if err := database.DB.Order("display_order ASC, id ASC").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list testimonials")
		}
		return c.JSON(list)
	}
}

// GET /api/admin/testimonials/:id
func AdminGetTestimonialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTestimonial(c)
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// POST /api/admin/testimonials
func CreateTestimonialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TestimonialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == nil || body.Role == nil || body.Location == nil || body.Text == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Name, role, location and text are required")
		}

		t := models.Testimonial{Rating: DefaultRating, IsActive: true}
		if err := body.apply(&t); err != nil {
			return err
		}
		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create testimonial")
		}

		audit.Record(c, audit.EntityTestimonial, t.ID, models.AuditActionCreate,
			fmt.Sprintf("Testimonial created: %s", t.Name), nil, t)

		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// PUT /api/admin/testimonials/:id
func UpdateTestimonialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTestimonial(c)
		if err != nil {
			return err
		}
		before := *t

		var body TestimonialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := body.apply(t); err != nil {
			return err
		}
		if err := database.DB.Save(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update testimonial")
		}

		audit.Record(c, audit.EntityTestimonial, t.ID, models.AuditActionUpdate,
			fmt.Sprintf("Testimonial updated: %s", t.Name), before, *t)

		return c.JSON(t)
	}
}

// DELETE /api/admin/testimonials/:id
func DeleteTestimonialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := findTestimonial(c)
		if err != nil {
			return err
		}
		if err := database.DB.Delete(&models.Testimonial{}, "id = ?", t.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete testimonial")
		}

		audit.Record(c, audit.EntityTestimonial, t.ID, models.AuditActionDelete,
			fmt.Sprintf("Testimonial deleted: %s", t.Name), *t, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
