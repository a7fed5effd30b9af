package dashboard

import (
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const recentEnquiries = 5

type PropertyStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Featured int64 `json:"featured"`
}

type BlogStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
}

type InboxStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

type Stats struct {
	Properties      PropertyStats    `json:"properties"`
	Blogs           BlogStats        `json:"blogs"`
	Services        int64            `json:"services"`
	Testimonials    int64            `json:"testimonials"`
	Enquiries       InboxStats       `json:"enquiries"`
	Contacts        InboxStats       `json:"contacts"`
	RecentEnquiries []models.Enquiry `json:"recent_enquiries"`
}

// Collect gathers the admin dashboard counters.
func Collect(db *gorm.DB) (*Stats, error) {
	s := &Stats{RecentEnquiries: make([]models.Enquiry, 0)}

	counts := []struct {
		model any
		where map[string]any
		dst   *int64
	}{
		{&models.Property{}, nil, &s.Properties.Total},
		{&models.Property{}, map[string]any{"is_active": true}, &s.Properties.Active},
		{&models.Property{}, map[string]any{"featured": true, "is_active": true}, &s.Properties.Featured},
		{&models.Blog{}, nil, &s.Blogs.Total},
		{&models.Blog{}, map[string]any{"is_published": true}, &s.Blogs.Published},
		{&models.Service{}, nil, &s.Services},
		{&models.Testimonial{}, nil, &s.Testimonials},
		{&models.Enquiry{}, nil, &s.Enquiries.Total},
		{&models.Enquiry{}, map[string]any{"is_read": false}, &s.Enquiries.Unread},
		{&models.ContactMessage{}, nil, &s.Contacts.Total},
		{&models.ContactMessage{}, map[string]any{"is_read": false}, &s.Contacts.Unread},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Order("created_at DESC, id DESC").Limit(recentEnquiries).Find(&s.RecentEnquiries).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GET /api/admin/dashboard/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Collect(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard stats")
		}
		return c.JSON(s)
	}
}
