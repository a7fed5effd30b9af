package testimonial

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/testimonials", ListTestimonialsHandler())
	app.Post("/api/admin/testimonials", CreateTestimonialHandler())
	app.Put("/api/admin/testimonials/:id", UpdateTestimonialHandler())
	app.Delete("/api/admin/testimonials/:id", DeleteTestimonialHandler())
	return app
}

func TestCreateTestimonial(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()

	body := map[string]any{"name": "Priya", "role": "Buyer", "location": "Powai", "text": "Smooth purchase."}
	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/testimonials", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Testimonial
	testutil.DecodeJSON(t, resp, &created)
	assert.Equal(t, DefaultRating, created.Rating)
	assert.True(t, created.IsActive)

	body["rating"] = 6
	resp, err = app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/testimonials", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	delete(body, "rating")
	delete(body, "location")
	resp, err = app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/admin/testimonials", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublicTestimonialsHideInactive(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp()

	list := []models.Testimonial{
		{Name: "B", Text: "b", Rating: 4, DisplayOrder: 2, IsActive: true},
		{Name: "A", Text: "a", Rating: 5, DisplayOrder: 1, IsActive: true},
		{Name: "C", Text: "c", Rating: 3, DisplayOrder: 0, IsActive: true},
	}
	for i := range list {
		require.NoError(t, db.Create(&list[i]).Error)
	}

	target := "/api/admin/testimonials/" + strconv.FormatUint(uint64(list[2].ID), 10)
	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPut, target, map[string]any{"is_active": false}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))
	require.NoError(t, err)
	var got []models.Testimonial
	testutil.DecodeJSON(t, resp, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}
