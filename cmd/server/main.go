package main

import (
	"log"
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/admin"
	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/auth"
	"github.com/KAMASDM/naishad/internal/blog"
	"github.com/KAMASDM/naishad/internal/config"
	"github.com/KAMASDM/naishad/internal/dashboard"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/enquiry"
	"github.com/KAMASDM/naishad/internal/listing"
	"github.com/KAMASDM/naishad/internal/location"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/notify"
	"github.com/KAMASDM/naishad/internal/seo"
	"github.com/KAMASDM/naishad/internal/services"
	"github.com/KAMASDM/naishad/internal/site"
	"github.com/KAMASDM/naishad/internal/testimonial"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	notifier, err := notify.New(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		log.Printf("[WARN] lead notifier unavailable, continuing without it: %v", err)
		notifier = notify.Nop{}
	}
	defer notifier.Close()

	seoSite := seo.NewSite(cfg)
	pages := site.NewPages(seoSite)
	store := media.NewStore(cfg.MediaPath, cfg.MediaURLPrefix)

	app := fiber.New(fiber.Config{
		Views:     site.NewEngine(),
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Unexpected server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				log.Println("Unexpected error:", err)
			}

			if !strings.HasPrefix(c.Path(), "/api") {
				if code == fiber.StatusNotFound {
					return pages.NotFound(c)
				}
				return c.Status(code).SendString(message)
			}
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Static(cfg.MediaURLPrefix, cfg.MediaPath, fiber.Static{
		MaxAge: int((30 * 24 * time.Hour).Seconds()),
	})

	// SEO
	app.Get("/sitemap.xml", seo.SitemapHandler(seoSite))
	app.Get("/robots.txt", seo.RobotsHandler(seoSite))
	app.Get("/manifest.webmanifest", seo.ManifestHandler(seoSite))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public site data
	api.Get("/properties", listing.ListPropertiesHandler())
	api.Get("/properties/search", listing.SearchPropertiesHandler())
	api.Get("/properties/featured", listing.FeaturedPropertiesHandler())
	api.Get("/properties/:slug", listing.GetPropertyHandler())

	api.Get("/blogs", blog.ListBlogsHandler())
	api.Get("/blogs/categories", blog.CategoriesHandler())
	api.Get("/blogs/:slug", blog.GetBlogHandler())

	api.Get("/services", services.ListServicesHandler())
	api.Get("/services/:slug", services.GetServiceHandler())

	api.Get("/testimonials", testimonial.ListTestimonialsHandler())

	api.Post("/enquiries", enquiry.CreateEnquiryHandler(notifier))
	api.Post("/contact", enquiry.CreateContactHandler(notifier))

	api.Get("/cities", location.ListCitiesHandler())
	api.Get("/areas", location.ListAreasHandler())
	api.Get("/areas/by-city/:cityId", location.ListAreasHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	adminRoutes := protected.Group("/admin", auth.RequireRole(models.RoleSuperAdmin, models.RoleEditor))

	// Properties
	adminRoutes.Get("/properties", listing.AdminListPropertiesHandler())
	adminRoutes.Get("/properties/export", listing.ExportHandler())
	adminRoutes.Post("/properties/import", listing.ImportHandler(store))
	adminRoutes.Get("/properties/:id", listing.AdminGetPropertyHandler())
	adminRoutes.Post("/properties", listing.CreatePropertyHandler(store))
	adminRoutes.Put("/properties/:id", listing.UpdatePropertyHandler(store))
	adminRoutes.Patch("/properties/:id/toggle", listing.TogglePropertyHandler())
	adminRoutes.Delete("/properties/:id", listing.DeletePropertyHandler())

	// Blogs
	adminRoutes.Get("/blogs", blog.AdminListBlogsHandler())
	adminRoutes.Get("/blogs/:id", blog.AdminGetBlogHandler())
	adminRoutes.Post("/blogs", blog.CreateBlogHandler(store))
	adminRoutes.Put("/blogs/:id", blog.UpdateBlogHandler(store))
	adminRoutes.Delete("/blogs/:id", blog.DeleteBlogHandler())

	// Services
	adminRoutes.Get("/services", services.AdminListServicesHandler())
	adminRoutes.Get("/services/:id", services.AdminGetServiceHandler())
	adminRoutes.Post("/services", services.CreateServiceHandler(store))
	adminRoutes.Put("/services/:id", services.UpdateServiceHandler(store))
	adminRoutes.Delete("/services/:id", services.DeleteServiceHandler())

	// Testimonials
	adminRoutes.Get("/testimonials", testimonial.AdminListTestimonialsHandler())
	adminRoutes.Get("/testimonials/:id", testimonial.AdminGetTestimonialHandler())
	adminRoutes.Post("/testimonials", testimonial.CreateTestimonialHandler())
	adminRoutes.Put("/testimonials/:id", testimonial.UpdateTestimonialHandler())
	adminRoutes.Delete("/testimonials/:id", testimonial.DeleteTestimonialHandler())

	// Leads
	adminRoutes.Get("/enquiries", enquiry.ListEnquiriesHandler())
	adminRoutes.Get("/enquiries/export", enquiry.ExportEnquiriesHandler())
	adminRoutes.Patch("/enquiries/:id/read", enquiry.MarkEnquiryHandler(false))
	adminRoutes.Patch("/enquiries/:id/responded", enquiry.MarkEnquiryHandler(true))
	adminRoutes.Delete("/enquiries/:id", enquiry.DeleteEnquiryHandler())
	adminRoutes.Get("/contacts", enquiry.ListContactsHandler())
	adminRoutes.Patch("/contacts/:id/read", enquiry.MarkContactReadHandler())
	adminRoutes.Delete("/contacts/:id", enquiry.DeleteContactHandler())

	// Locations
	adminRoutes.Post("/cities", location.CreateCityHandler())
	adminRoutes.Delete("/cities/:id", location.DeleteCityHandler())
	adminRoutes.Post("/areas", location.CreateAreaHandler())
	adminRoutes.Delete("/areas/:id", location.DeleteAreaHandler())

	// Media
	adminRoutes.Post("/media", media.UploadHandler(store))

	// Dashboard
	adminRoutes.Get("/dashboard/stats", dashboard.StatsHandler())
	adminRoutes.Get("/dashboard/leads-chart", dashboard.LeadChartHandler())

	// Super admin only
	superAdmin := adminRoutes.Group("", auth.RequireRole(models.RoleSuperAdmin))
	superAdmin.Get("/users", admin.ListUsersHandler())
	superAdmin.Post("/users", admin.CreateUserHandler())
	superAdmin.Put("/users/:id/password", admin.ResetPasswordHandler())
	superAdmin.Delete("/users/:id", admin.DeleteUserHandler())
	superAdmin.Get("/audit-logs", audit.ListAuditLogsHandler())
	superAdmin.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	// Public pages
	pages.Register(app)
	app.Use(pages.NotFound)

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
