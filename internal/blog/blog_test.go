package blog

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(t *testing.T) *fiber.App {
	store := media.NewStore(t.TempDir(), "/media")

	app := fiber.New()
	app.Get("/api/blogs", ListBlogsHandler())
	app.Get("/api/blogs/categories", CategoriesHandler())
	app.Get("/api/blogs/:slug", GetBlogHandler())
	app.Get("/api/admin/blogs", AdminListBlogsHandler())
	app.Post("/api/admin/blogs", CreateBlogHandler(store))
	app.Get("/api/admin/blogs/:id", AdminGetBlogHandler())
	app.Put("/api/admin/blogs/:id", UpdateBlogHandler(store))
	app.Delete("/api/admin/blogs/:id", DeleteBlogHandler())
	return app
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	blogs := []models.Blog{
		{Title: "Buying Guide", Slug: "buying-guide", Content: "<p>Read this</p>", Category: "Guides", IsPublished: true, Featured: true, PublishedDate: day},
		{Title: "Market Update", Slug: "market-update", Content: "<p>Prices</p>", Category: "Market", IsPublished: true, PublishedDate: day.AddDate(0, 0, 2)},
		{Title: "Draft", Slug: "draft", Content: "<p>wip</p>", Category: "Secret", PublishedDate: day.AddDate(0, 0, 5)},
	}
	for i := range blogs {
		require.NoError(t, db.Create(&blogs[i]).Error)
	}
}

type listBody struct {
	Count   int            `json:"count"`
	Results []BlogResponse `json:"results"`
}

func TestListBlogsOnlyPublished(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)
	app := newApp(t)

	cases := map[string][]string{
		"/api/blogs":                 {"Market Update", "Buying Guide"},
		"/api/blogs?category=guides": {"Buying Guide"},
		"/api/blogs?featured=true":   {"Buying Guide"},
		"/api/blogs?limit=1":         {"Market Update"},
		"/api/blogs?limit=abc":       {"Market Update", "Buying Guide"},
	}
	for target, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		var body listBody
		testutil.DecodeJSON(t, resp, &body)

		titles := make([]string, 0)
		for _, b := range body.Results {
			titles = append(titles, b.Title)
		}
		assert.Equal(t, want, titles, target)
		assert.Equal(t, len(want), body.Count, target)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/blogs/draft", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/blogs/categories", nil))
	require.NoError(t, err)
	var cats []string
	testutil.DecodeJSON(t, resp, &cats)
	assert.Equal(t, []string{"Guides", "Market"}, cats)
}

func TestCreateBlogDefaults(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp(t)

	payload := map[string]any{
		"title":   "Why Bandra?",
		"content": `<h2>Location</h2><p>Sea link access <img src="/media/a.jpg"> and great food.</p>`,
		"tags":    "bandra, lifestyle",
	}
	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/blogs", payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var b BlogResponse
	testutil.DecodeJSON(t, resp, &b)
	assert.Equal(t, "why-bandra", b.Slug)
	assert.Equal(t, DefaultAuthor, b.Author)
	assert.Equal(t, DefaultCategory, b.Category)
	assert.Equal(t, "Location Sea link access and great food.", b.Excerpt)
	assert.Equal(t, "/media/a.jpg", b.FeaturedImage)
	assert.Equal(t, []string{"bandra", "lifestyle"}, b.TagsList)
	assert.True(t, b.IsPublished)
	assert.Equal(t, 1, b.ReadingTime)
	assert.False(t, b.PublishedDate.IsZero())

	resp, err = app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/blogs", payload))
	require.NoError(t, err)
	var second BlogResponse
	testutil.DecodeJSON(t, resp, &second)
	assert.Equal(t, "why-bandra-2", second.Slug)

	resp, err = app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/blogs", map[string]any{"title": "No body"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.AuditLog{}).Where("entity_type = ?", "blog").Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUpdateBlogRefreshesExcerpt(t *testing.T) {
	db := testutil.SetupDB(t)
	seed(t, db)
	app := newApp(t)

	var b models.Blog
	require.NoError(t, db.Where("slug = ?", "draft").First(&b).Error)
	target := "/api/admin/blogs/" + strconv.FormatUint(uint64(b.ID), 10)

	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPut, target, map[string]any{
		"content":      "<p>Finished article</p>",
		"is_published": true,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated BlogResponse
	testutil.DecodeJSON(t, resp, &updated)
	assert.Equal(t, "Finished article", updated.Excerpt)
	assert.True(t, updated.IsPublished)
	assert.False(t, updated.UpdatedDate.IsZero())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/blogs/draft", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/blogs/draft", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
