package enquiry

import (
	"fmt"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func unreadFilter(c *fiber.Ctx, dbq *gorm.DB) *gorm.DB {
	if c.Query("unread") == "true" {
		dbq = dbq.Where("is_read = ?", false)
	}
	return dbq.Order("created_at DESC, id DESC")
}

// GET /api/admin/enquiries?unread=true
func ListEnquiriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := make([]models.Enquiry, 0)
		if err := unreadFilter(c, database.DB.Model(&models.Enquiry{})).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list enquiries")
		}
		return c.JSON(list)
	}
}

// GET /api/admin/contacts?unread=true
func ListContactsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := make([]models.ContactMessage, 0)
		if err := unreadFilter(c, database.DB.Model(&models.ContactMessage{})).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list messages")
		}
		return c.JSON(list)
	}
}

func findEnquiry(c *fiber.Ctx) (*models.Enquiry, error) {
	var e models.Enquiry
	if err := database.DB.First(&e, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enquiry not found")
	}
	return &e, nil
}

func findContact(c *fiber.Ctx) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Message not found")
	}
	return &m, nil
}

// PATCH /api/admin/enquiries/:id/read
// PATCH /api/admin/enquiries/:id/responded
func MarkEnquiryHandler(responded bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := findEnquiry(c)
		if err != nil {
			return err
		}
		before := *e

		e.IsRead = true
		what := "read"
		if responded {
			e.IsResponded = true
			what = "responded"
		}
		if err := database.DB.Save(e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update enquiry")
		}

		audit.Record(c, audit.EntityEnquiry, e.ID, models.AuditActionUpdate,
			fmt.Sprintf("Enquiry from %s marked %s", e.Name, what), before, *e)

		return c.JSON(e)
	}
}

// PATCH /api/admin/contacts/:id/read
func MarkContactReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findContact(c)
		if err != nil {
			return err
		}
		before := *m

		m.IsRead = true
		if err := database.DB.Save(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update message")
		}

		audit.Record(c, audit.EntityContact, m.ID, models.AuditActionUpdate,
			fmt.Sprintf("Message from %s marked read", m.Name), before, *m)

		return c.JSON(m)
	}
}

// DELETE /api/admin/enquiries/:id
func DeleteEnquiryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := findEnquiry(c)
		if err != nil {
			return err
		}
		if err := database.DB.Delete(&models.Enquiry{}, "id = ?", e.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete enquiry")
		}

		audit.Record(c, audit.EntityEnquiry, e.ID, models.AuditActionDelete,
			fmt.Sprintf("Enquiry from %s deleted", e.Name), *e, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/admin/contacts/:id
func DeleteContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := findContact(c)
		if err != nil {
			return err
		}
		if err := database.DB.Delete(&models.ContactMessage{}, "id = ?", m.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete message")
		}

		audit.Record(c, audit.EntityContact, m.ID, models.AuditActionDelete,
			fmt.Sprintf("Message from %s deleted", m.Name), *m, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
