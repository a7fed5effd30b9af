package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ServiceResponse struct {
	models.Service
	FeaturesList []string `json:"features_list"`
	PriceDisplay string   `json:"price_display"`
}

func NewServiceResponse(s models.Service) ServiceResponse {
	price := "Contact for pricing"
	if s.StartingPrice != nil && *s.StartingPrice > 0 {
		price = "Starting from " + format.Price(*s.StartingPrice)
	}
	return ServiceResponse{
		Service:      s,
		FeaturesList: format.SplitList(s.Features),
		PriceDisplay: price,
	}
}

func NewServiceResponses(list []models.Service) []ServiceResponse {
	res := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		res = append(res, NewServiceResponse(s))
	}
	return res
}

type ServiceRequest struct {
	Title         *string  `json:"title"`
	Slug          *string  `json:"slug"`
	Description   *string  `json:"description"`
	ServiceType   *string  `json:"service_type"`
	Features      *string  `json:"features"`
	StartingPrice *float64 `json:"starting_price"`
	IconImage     *string  `json:"icon_image"`
	DisplayOrder  *int     `json:"display_order"`
	Featured      *bool    `json:"featured"`
	IsActive      *bool    `json:"is_active"`
}

func (r *ServiceRequest) apply(s *models.Service) error {
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
		}
		s.Title = strings.TrimSpace(*r.Title)
	}
	if r.Slug != nil {
		s.Slug = format.Slugify(*r.Slug)
	}
	if r.Description != nil {
		s.Description = strings.TrimSpace(*r.Description)
	}
	if r.ServiceType != nil {
		s.ServiceType = strings.TrimSpace(*r.ServiceType)
	}
	if r.Features != nil {
		s.Features = format.JoinList(format.SplitList(*r.Features))
	}
	if r.StartingPrice != nil {
		switch {
		case *r.StartingPrice < 0:
			return fiber.NewError(fiber.StatusBadRequest, "Starting price cannot be negative")
		case *r.StartingPrice == 0:
			s.StartingPrice = nil
		default:
			price := *r.StartingPrice
			s.StartingPrice = &price
		}
	}
	if r.DisplayOrder != nil {
		s.DisplayOrder = *r.DisplayOrder
	}
	if r.Featured != nil {
		s.Featured = *r.Featured
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return nil
}

// storeImages saves the icon once the request is known to be accepted.
func (r *ServiceRequest) storeImages(s *models.Service, store *media.Store) error {
	if r.IconImage != nil {
		url, err := store.Resolve(*r.IconImage, media.ContentImage)
		if err != nil {
			return media.HTTPError(err)
		}
		s.IconImage = url
	}
	return nil
}

// Active returns active services in display order.
func Active(db *gorm.DB, serviceType string, featuredOnly bool) ([]models.Service, error) {
	dbq := db.Model(&models.Service{}).Where("is_active = ?", true)
	if serviceType != "" {
		dbq = dbq.Where("LOWER(service_type) = ?", strings.ToLower(serviceType))
	}
	if featuredOnly {
		dbq = dbq.Where("featured = ?", true)
	}
	var list []models.Service
	err := dbq.Order("display_order ASC, created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// GET /api/services?service_type=&featured=true
func ListServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := Active(database.DB, strings.TrimSpace(c.Query("service_type")), c.Query("featured") == "true")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch services")
		}
		return c.JSON(fiber.Map{
			"count":   len(list),
			"results": NewServiceResponses(list),
		})
	}
}

// GET /api/services/:slug
func GetServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := url.PathUnescape(c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid slug")
		}

		var s models.Service
		err = database.DB.Where("slug = ? AND is_active = ?", slug, true).First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Service not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch service")
		}
		return c.JSON(NewServiceResponse(s))
	}
}

func findService(c *fiber.Ctx) (*models.Service, error) {
	var s models.Service
	if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Service not found")
	}
	return &s, nil
}

// GET /api/admin/services
func AdminListServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Service
		if err := database.DB.Order("display_order ASC, id ASC").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list services")
		}
		return c.JSON(NewServiceResponses(list))
	}
}

// GET /api/admin/services/:id
func AdminGetServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := findService(c)
		if err != nil {
			return err
		}
		return c.JSON(NewServiceResponse(*s))
	}
}

// POST /api/admin/services
func CreateServiceHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Title == nil || body.Description == nil || body.ServiceType == nil ||
			strings.TrimSpace(*body.Description) == "" || strings.TrimSpace(*body.ServiceType) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title, description and service type are required")
		}

		s := models.Service{IsActive: true}
		if err := body.apply(&s); err != nil {
			return err
		}

		if s.Slug == "" {
			slug, err := database.UniqueSlug(database.DB, &models.Service{}, format.Slugify(s.Title), 0)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate slug")
			}
			s.Slug = slug
		} else if taken, err := database.SlugTaken(database.DB, &models.Service{}, s.Slug, 0); err != nil || taken {
			return fiber.NewError(fiber.StatusConflict, "A service with this slug already exists")
		}
		if err := body.storeImages(&s, store); err != nil {
			return err
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create service")
		}

		audit.Record(c, audit.EntityService, s.ID, models.AuditActionCreate,
			fmt.Sprintf("Service created: %s", s.Title), nil, s)

		return c.Status(fiber.StatusCreated).JSON(NewServiceResponse(s))
	}
}

// PUT /api/admin/services/:id
func UpdateServiceHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := findService(c)
		if err != nil {
			return err
		}
		before := *s

		var body ServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := body.apply(s); err != nil {
			return err
		}
		if s.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Slug cannot be empty")
		}
		if s.Slug != before.Slug {
			if taken, err := database.SlugTaken(database.DB, &models.Service{}, s.Slug, s.ID); err != nil || taken {
				return fiber.NewError(fiber.StatusConflict, "A service with this slug already exists")
			}
		}
		if err := body.storeImages(s, store); err != nil {
			return err
		}

		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update service")
		}

		audit.Record(c, audit.EntityService, s.ID, models.AuditActionUpdate,
			fmt.Sprintf("Service updated: %s", s.Title), before, *s)

		return c.JSON(NewServiceResponse(*s))
	}
}

// DELETE /api/admin/services/:id
func DeleteServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := findService(c)
		if err != nil {
			return err
		}
		if err := database.DB.Delete(&models.Service{}, "id = ?", s.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete service")
		}

		audit.Record(c, audit.EntityService, s.ID, models.AuditActionDelete,
			fmt.Sprintf("Service deleted: %s", s.Title), *s, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
