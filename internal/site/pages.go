package site

import (
	"errors"
	"net/url"
	"time"

	"github.com/KAMASDM/naishad/internal/blog"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/listing"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/seo"
	"github.com/KAMASDM/naishad/internal/services"
	"github.com/KAMASDM/naishad/internal/testimonial"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	layout       = "layouts/main"
	homeServices = 6
	homeBlogs    = 3
	similarCount = 3
)

// LeadForm configures the enquiry/contact form partial.
type LeadForm struct {
	Endpoint    string
	PropertyID  uint
	Interest    string
	WithSubject bool
}

// Pages renders the public site.
type Pages struct {
	Site seo.Site
}

func NewPages(site seo.Site) *Pages {
	return &Pages{Site: site}
}

func (p *Pages) render(c *fiber.Ctx, name string, meta seo.Meta, schemas []seo.Schema, data fiber.Map) error {
	data["Site"] = p.Site
	data["Meta"] = meta
	data["Year"] = time.Now().Year()
	data["JSONLD"] = seo.Script(append([]seo.Schema{p.Site.Organization()}, schemas...)...)
	return c.Render(name, data, layout)
}

// NotFound renders the 404 page.
func (p *Pages) NotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	meta := p.Site.NewMeta("Page not found", "", c.Path(), "")
	return p.render(c, "404", meta, nil, fiber.Map{})
}

func (p *Pages) crumbs(items ...seo.Crumb) seo.Schema {
	return p.Site.Breadcrumbs(append([]seo.Crumb{{Name: "Home", Path: "/"}}, items...)...)
}

// GET /
func (p *Pages) Home() fiber.Handler {
	return func(c *fiber.Ctx) error {
		featured, err := listing.Featured(database.DB)
		if err != nil {
			return err
		}
		svc, err := services.Active(database.DB, "", false)
		if err != nil {
			return err
		}
		if len(svc) > homeServices {
			svc = svc[:homeServices]
		}
		testimonials, err := testimonial.Active(database.DB)
		if err != nil {
			return err
		}
		blogs, err := blog.Published(database.DB, "", false, homeBlogs)
		if err != nil {
			return err
		}

		meta := p.Site.NewMeta("", "", "/", "")
		return p.render(c, "index", meta, []seo.Schema{p.Site.LocalBusiness()}, fiber.Map{
			"Featured":     featured,
			"Services":     svc,
			"Testimonials": testimonials,
			"Blogs":        blogs,
		})
	}
}

// GET /properties
func (p *Pages) Properties() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := listing.ParseFilters(c)
		props, err := listing.Find(database.DB, filters)
		if err != nil {
			return err
		}

		meta := p.Site.NewMeta("Properties for Sale",
			"Browse apartments, villas, penthouses and commercial spaces. Filter by type, BHK and locality.",
			"/properties", "")
		return p.render(c, "properties", meta, []seo.Schema{p.crumbs(seo.Crumb{Name: "Properties", Path: "/properties"})}, fiber.Map{
			"Properties":     props,
			"Filters":        filters,
			"Types":          models.PropertyTypes,
			"BedroomOptions": []int{1, 2, 3, 4, 5},
		})
	}
}

// GET /properties/:slug
func (p *Pages) Property() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := url.PathUnescape(c.Params("slug"))
		if err != nil {
			return p.NotFound(c)
		}
		prop, err := listing.FindBySlug(database.DB, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p.NotFound(c)
		}
		if err != nil {
			return err
		}

		similar, err := listing.Find(database.DB, listing.Filters{PropertyType: prop.PropertyType, Limit: similarCount + 1})
		if err != nil {
			return err
		}
		others := make([]models.Property, 0, similarCount)
		for _, s := range similar {
			if s.ID != prop.ID && len(others) < similarCount {
				others = append(others, s)
			}
		}

		path := "/properties/" + prop.Slug
		meta := p.Site.NewMeta(prop.Title, prop.Description, path, prop.PrimaryImage).Article()
		schemas := []seo.Schema{
			p.Site.Property(*prop),
			p.crumbs(seo.Crumb{Name: "Properties", Path: "/properties"}, seo.Crumb{Name: prop.Title, Path: path}),
		}
		return p.render(c, "property", meta, schemas, fiber.Map{
			"Property": prop,
			"Similar":  others,
			"Form":     LeadForm{Endpoint: "/api/enquiries", PropertyID: prop.ID, Interest: prop.Title},
		})
	}
}

// GET /blogs?category=
func (p *Pages) Blogs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Query("category")
		blogs, err := blog.Published(database.DB, category, false, 0)
		if err != nil {
			return err
		}
		categories, err := blog.Categories(database.DB)
		if err != nil {
			return err
		}

		meta := p.Site.NewMeta("Real Estate Blog",
			"Guides, market updates and tips for buying, selling and investing in property.", "/blogs", "")
		return p.render(c, "blogs", meta, []seo.Schema{p.crumbs(seo.Crumb{Name: "Blog", Path: "/blogs"})}, fiber.Map{
			"Blogs":      blogs,
			"Categories": categories,
			"Category":   category,
		})
	}
}

// GET /blogs/:slug
func (p *Pages) Blog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := url.PathUnescape(c.Params("slug"))
		if err != nil {
			return p.NotFound(c)
		}
		b, err := blog.FindBySlug(database.DB, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p.NotFound(c)
		}
		if err != nil {
			return err
		}

		path := "/blogs/" + b.Slug
		meta := p.Site.NewMeta(b.Title, b.Excerpt, path, b.FeaturedImage).Article()
		schemas := []seo.Schema{
			p.Site.BlogPosting(*b),
			p.crumbs(seo.Crumb{Name: "Blog", Path: "/blogs"}, seo.Crumb{Name: b.Title, Path: path}),
		}
		return p.render(c, "blog", meta, schemas, fiber.Map{"Blog": b})
	}
}

// GET /services
func (p *Pages) Services() fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc, err := services.Active(database.DB, "", false)
		if err != nil {
			return err
		}
		meta := p.Site.NewMeta("Our Services",
			"Property buying, selling, rentals, legal assistance and home loans under one roof.", "/services", "")
		return p.render(c, "services", meta, []seo.Schema{p.crumbs(seo.Crumb{Name: "Services", Path: "/services"})}, fiber.Map{
			"Services": svc,
		})
	}
}

// GET /about
func (p *Pages) About() fiber.Handler {
	return func(c *fiber.Ctx) error {
		testimonials, err := testimonial.Active(database.DB)
		if err != nil {
			return err
		}
		meta := p.Site.NewMeta("About Us", "", "/about", "")
		return p.render(c, "about", meta, []seo.Schema{p.crumbs(seo.Crumb{Name: "About", Path: "/about"})}, fiber.Map{
			"Testimonials": testimonials,
		})
	}
}

// GET /contact
func (p *Pages) Contact() fiber.Handler {
	return func(c *fiber.Ctx) error {
		meta := p.Site.NewMeta("Contact Us",
			"Get in touch for site visits, valuations and property advice.", "/contact", "")
		schemas := []seo.Schema{p.Site.LocalBusiness(), p.crumbs(seo.Crumb{Name: "Contact", Path: "/contact"})}
		return p.render(c, "contact", meta, schemas, fiber.Map{
			"Form": LeadForm{Endpoint: "/api/contact", WithSubject: true},
		})
	}
}

// Register mounts every public page on app.
func (p *Pages) Register(app fiber.Router) {
	app.Get("/", p.Home())
	app.Get("/properties", p.Properties())
	app.Get("/properties/:slug", p.Property())
	app.Get("/blogs", p.Blogs())
	app.Get("/blogs/:slug", p.Blog())
	app.Get("/services", p.Services())
	app.Get("/about", p.About())
	app.Get("/contact", p.Contact())
}
