package enquiry

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/notify"

	"github.com/gofiber/fiber/v2"
)

const publishTimeout = 5 * time.Second

type EnquiryRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PropertyID       *uint  `json:"property_id"`
	PropertyInterest string `json:"property_interest"`
	Message          string `json:"message"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func validateContactDetails(name, email, phone, message string) error {
	if name == "" || email == "" || phone == "" || message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please fill in all required fields")
	}
	if !format.ValidEmail(email) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid email address")
	}
	if !format.ValidPhone(phone) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid 10-digit mobile number")
	}
	return nil
}

// publish hands the lead to the notifier. Failures are logged only, the lead
// is already stored.
func publish(n notify.Notifier, event notify.LeadEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.LeadCreated(ctx, event); err != nil {
		log.Printf("[WARN] lead %s #%d not published: %v", event.Kind, event.ID, err)
	}
}

// POST /api/enquiries
func CreateEnquiryHandler(n notify.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EnquiryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		e := models.Enquiry{
			Name:             strings.TrimSpace(body.Name),
			Email:            strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:            strings.TrimSpace(body.Phone),
			PropertyInterest: strings.TrimSpace(body.PropertyInterest),
			Message:          strings.TrimSpace(body.Message),
		}
		if err := validateContactDetails(e.Name, e.Email, e.Phone, e.Message); err != nil {
			return err
		}

		if body.PropertyID != nil && *body.PropertyID != 0 {
			var p models.Property
			if err := database.DB.Select("id", "title").First(&p, "id = ?", *body.PropertyID).Error; err == nil {
				e.PropertyID = &p.ID
				if e.PropertyInterest == "" {
					e.PropertyInterest = p.Title
				}
			}
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to submit enquiry")
		}

		publish(n, notify.LeadEvent{
			Kind:       notify.KindEnquiry,
			ID:         e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Phone:      e.Phone,
			PropertyID: e.PropertyID,
			Interest:   e.PropertyInterest,
			Message:    e.Message,
			CreatedAt:  e.CreatedAt,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Enquiry submitted successfully",
			"data":    e,
		})
	}
}

// POST /api/contact
func CreateContactHandler(n notify.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ContactRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		m := models.ContactMessage{
			Name:    strings.TrimSpace(body.Name),
			Email:   strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:   strings.TrimSpace(body.Phone),
			Subject: strings.TrimSpace(body.Subject),
			Message: strings.TrimSpace(body.Message),
		}
		if m.Subject == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Please fill in all required fields")
		}
		if err := validateContactDetails(m.Name, m.Email, m.Phone, m.Message); err != nil {
			return err
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
		}

		publish(n, notify.LeadEvent{
			Kind:      notify.KindContact,
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Subject:   m.Subject,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Message sent successfully",
			"data":    m,
		})
	}
}
