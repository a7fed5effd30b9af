package seo

import (
	"fmt"
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/database"

	"github.com/gofiber/fiber/v2"
)

// Robots renders robots.txt.
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /admin/\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", s.URL)
	return b.String()
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

func (s Site) Manifest() Manifest {
	return Manifest{
		Name:            s.ShortName + " - " + s.Tagline,
		ShortName:       s.ShortName,
		Description:     s.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      s.ThemeColor,
		Icons: []ManifestIcon{
			{Src: "/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/icon-512.png", Sizes: "512x512", Type: "image/png"},
		},
	}
}

// GET /sitemap.xml
func SitemapHandler(s Site) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set, err := s.Sitemap(database.DB, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build sitemap")
		}
		body, err := set.Marshal()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode sitemap")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.Send(body)
	}
}

// GET /robots.txt
func RobotsHandler(s Site) fiber.Handler {
	body := s.Robots()
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(body)
	}
}

// GET /manifest.webmanifest
func ManifestHandler(s Site) fiber.Handler {
	m := s.Manifest()
	return func(c *fiber.Ctx) error {
		return c.JSON(m, "application/manifest+json")
	}
}
