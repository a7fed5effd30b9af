package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KAMASDM/naishad/internal/config"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/seo"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp() *fiber.App {
	site := seo.NewSite(&config.Config{SiteURL: "https://example.in", SiteName: "Example Realty"})
	pages := NewPages(site)

	app := fiber.New(fiber.Config{Views: NewEngine()})
	pages.Register(app)
	app.Use(pages.NotFound)
	return app
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]models.Property{
		{Title: "Sea View Flat", Slug: "sea-view-flat", PropertyType: "Apartment", Price: 25000000, Bedrooms: 2,
			AreaName: "Bandra West", CityName: "Mumbai", Amenities: "Gym, Pool", Featured: true, IsActive: true,
			Gallery: []models.GalleryImage{{Image: "/media/g.jpg", AltText: "Living room"}}},
		{Title: "Harbour Flat", Slug: "harbour-flat", PropertyType: "Apartment", Price: 18000000, IsActive: true},
		{Title: "Secret Villa", Slug: "secret-villa", PropertyType: "Villa", Featured: true},
	}).Error)
	require.NoError(t, db.Create(&[]models.Blog{
		{Title: "Buying Guide", Slug: "buying-guide", Content: "<p>Start with <strong>budget</strong></p>", Excerpt: "Start with budget",
			Author: "Admin", Category: "Guides", IsPublished: true, PublishedDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Unpublished", Slug: "unpublished", Content: "<p>x</p>"},
	}).Error)
	require.NoError(t, db.Create(&models.Service{Title: "Legal Help", Slug: "legal-help", Description: "Paperwork", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Testimonial{Name: "Priya", Text: "Great team", Rating: 4, IsActive: true}).Error)
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHomePage(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)

	status, body := get(t, newApp(), "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>RealEstate - Premium Properties in Mumbai</title>")
	assert.Contains(t, body, "Sea View Flat")
	assert.NotContains(t, body, "Secret Villa")
	assert.Contains(t, body, "₹2.50 Cr")
	assert.Contains(t, body, "Legal Help")
	assert.Contains(t, body, "★★★★☆")
	assert.Contains(t, body, "Buying Guide")
	assert.Contains(t, body, `"@type":"RealEstateAgent"`)
	assert.Contains(t, body, `"@type":"LocalBusiness"`)
}

func TestPropertyPages(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)
	app := newApp()

	status, body := get(t, app, "/properties?bedrooms=2")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "1 properties found")

	status, body = get(t, app, "/properties/sea-view-flat")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>Sea View Flat | Example Realty</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://example.in/properties/sea-view-flat">`)
	assert.Contains(t, body, `"@type":"Product"`)
	assert.Contains(t, body, `"@type":"BreadcrumbList"`)
	assert.Contains(t, body, "<li>Gym</li>")
	assert.Contains(t, body, "Harbour Flat", "similar properties")
	assert.Contains(t, body, `data-endpoint="/api/enquiries"`)

	status, _ = get(t, app, "/properties/secret-villa")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBlogPages(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)
	app := newApp()

	status, body := get(t, app, "/blogs")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Buying Guide")
	assert.NotContains(t, body, "Unpublished")

	status, body = get(t, app, "/blogs/buying-guide")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<strong>budget</strong>")
	assert.Contains(t, body, `"@type":"BlogPosting"`)
	assert.Contains(t, body, "01 Feb 2024")

	status, _ = get(t, app, "/blogs/unpublished")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStaticPagesAndNotFound(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)
	app := newApp()

	for _, path := range []string{"/services", "/about", "/contact"} {
		status, body := get(t, app, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Contains(t, body, "Example Realty", path)
	}

	status, body := get(t, app, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Page not found")
}
