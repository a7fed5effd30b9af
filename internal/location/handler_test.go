package location

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
	app.Get("/api/cities", ListCitiesHandler())
	app.Get("/api/areas", ListAreasHandler())
	app.Get("/api/areas/by-city/:cityId", ListAreasHandler())
	app.Post("/api/admin/cities", CreateCityHandler())
	app.Delete("/api/admin/cities/:id", DeleteCityHandler())
	app.Post("/api/admin/areas", CreateAreaHandler())
	app.Delete("/api/admin/areas/:id", DeleteAreaHandler())
	return app
}

func post(t *testing.T, app *fiber.App, target string, body any, want int, out any) {
	t.Helper()
	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, target, body))
	require.NoError(t, err)
	require.Equal(t, want, resp.StatusCode)
	if out != nil {
		testutil.DecodeJSON(t, resp, out)
	}
}

func getAreas(t *testing.T, app *fiber.App, target string) []AreaResponse {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var areas []AreaResponse
	testutil.DecodeJSON(t, resp, &areas)
	return areas
}

func TestCitiesAndAreas(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()

	var mumbai, pune models.City
	post(t, app, "/api/admin/cities", map[string]string{"name": "Mumbai"}, http.StatusCreated, &mumbai)
	post(t, app, "/api/admin/cities", map[string]string{"name": "Pune"}, http.StatusCreated, &pune)
	post(t, app, "/api/admin/cities", map[string]string{"name": "mumbai"}, http.StatusConflict, nil)
	post(t, app, "/api/admin/cities", map[string]string{"name": " "}, http.StatusBadRequest, nil)

	post(t, app, "/api/admin/areas", map[string]any{"name": "Juhu", "city_id": mumbai.ID}, http.StatusCreated, nil)
	post(t, app, "/api/admin/areas", map[string]any{"name": "Bandra", "city_id": mumbai.ID}, http.StatusCreated, nil)
	post(t, app, "/api/admin/areas", map[string]any{"name": "Baner", "city_id": pune.ID}, http.StatusCreated, nil)
	post(t, app, "/api/admin/areas", map[string]any{"name": "Juhu", "city_id": mumbai.ID}, http.StatusConflict, nil)
	post(t, app, "/api/admin/areas", map[string]any{"name": "Nowhere", "city_id": 999}, http.StatusBadRequest, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	require.NoError(t, err)
	var cities []models.City
	testutil.DecodeJSON(t, resp, &cities)
	require.Len(t, cities, 2)
	assert.Equal(t, "Mumbai", cities[0].Name)

	id := strconv.FormatUint(uint64(mumbai.ID), 10)
	byCity := getAreas(t, app, "/api/areas/by-city/"+id)
	require.Len(t, byCity, 2)
	assert.Equal(t, "Bandra", byCity[0].Name)
	assert.Equal(t, "Mumbai", byCity[0].CityName)

	assert.Len(t, getAreas(t, app, "/api/areas?city_id="+id), 2)
	assert.Len(t, getAreas(t, app, "/api/areas"), 3)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/areas?city_id=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCityDetachesAreas(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp()

	city := models.City{Name: "Mumbai"}
	require.NoError(t, db.Create(&city).Error)
	area := models.Area{Name: "Juhu", CityID: &city.ID}
	require.NoError(t, db.Create(&area).Error)
	prop := models.Property{Title: "Villa", Slug: "villa", CityID: &city.ID, AreaID: &area.ID, CityName: "Mumbai", IsActive: true}
	require.NoError(t, db.Create(&prop).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/cities/"+strconv.FormatUint(uint64(city.ID), 10), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, db.First(&area, area.ID).Error)
	assert.Nil(t, area.CityID)
	require.NoError(t, db.First(&prop, prop.ID).Error)
	assert.Nil(t, prop.CityID)
	assert.Equal(t, "Mumbai", prop.CityName)

	areas := getAreas(t, app, "/api/areas")
	require.Len(t, areas, 1)
	assert.Empty(t, areas[0].CityName)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/areas/"+strconv.FormatUint(uint64(area.ID), 10), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, db.First(&prop, prop.ID).Error)
	assert.Nil(t, prop.AreaID)
}
