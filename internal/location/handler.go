package location

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AreaResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	CityID   *uint  `json:"city_id"`
	CityName string `json:"city_name"`
}

func newAreaResponses(areas []models.Area) []AreaResponse {
	res := make([]AreaResponse, 0, len(areas))
	for _, a := range areas {
		r := AreaResponse{ID: a.ID, Name: a.Name, CityID: a.CityID}
		if a.City != nil {
			r.CityName = a.City.Name
		}
		res = append(res, r)
	}
	return res
}

// Cities returns every city ordered by name.
func Cities(db *gorm.DB) ([]models.City, error) {
	cities := make([]models.City, 0)
	err := db.Order("name ASC").Find(&cities).Error
	return cities, err
}

// Areas returns areas ordered by name, optionally only those of one city.
func Areas(db *gorm.DB, cityID uint) ([]models.Area, error) {
	dbq := db.Preload("City").Order("name ASC")
	if cityID != 0 {
		dbq = dbq.Where("city_id = ?", cityID)
	}
	var areas []models.Area
	err := dbq.Find(&areas).Error
	return areas, err
}

// GET /api/cities
func ListCitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cities, err := Cities(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch cities")
		}
		return c.JSON(cities)
	}
}

// GET /api/areas?city_id=
// GET /api/areas/by-city/:cityId
func ListAreasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("cityId", c.Query("city_id"))

		var cityID uint
		if raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || n == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid city id")
			}
			cityID = uint(n)
		}

		areas, err := Areas(database.DB, cityID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch areas")
		}
		return c.JSON(newAreaResponses(areas))
	}
}

type CityRequest struct {
	Name string `json:"name"`
}

// POST /api/admin/cities
func CreateCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "City name is required")
		}

		var count int64
		database.DB.Model(&models.City{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "City already exists")
		}

		city := models.City{Name: name}
		if err := database.DB.Create(&city).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create city")
		}

		audit.Record(c, audit.EntityCity, city.ID, models.AuditActionCreate,
			fmt.Sprintf("City created: %s", city.Name), nil, city)

		return c.Status(fiber.StatusCreated).JSON(city)
	}
}

// DELETE /api/admin/cities/:id. Areas of the city are kept and detached.
func DeleteCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var city models.City
		if err := database.DB.First(&city, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "City not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Area{}).Where("city_id = ?", city.ID).Update("city_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Property{}).Where("city_id = ?", city.ID).Update("city_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&models.City{}, "id = ?", city.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete city")
		}

		audit.Record(c, audit.EntityCity, city.ID, models.AuditActionDelete,
			fmt.Sprintf("City deleted: %s", city.Name), city, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type AreaRequest struct {
	Name   string `json:"name"`
	CityID uint   `json:"city_id"`
}

// POST /api/admin/areas
func CreateAreaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AreaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" || body.CityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Area name and city are required")
		}

		var city models.City
		if err := database.DB.First(&city, "id = ?", body.CityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "City not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load city")
		}

		var count int64
		database.DB.Model(&models.Area{}).
			Where("city_id = ? AND LOWER(name) = ?", city.ID, strings.ToLower(name)).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Area already exists in this city")
		}

		area := models.Area{Name: name, CityID: &city.ID}
		if err := database.DB.Create(&area).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create area")
		}

		audit.Record(c, audit.EntityArea, area.ID, models.AuditActionCreate,
			fmt.Sprintf("Area created: %s, %s", area.Name, city.Name), nil, area)

		area.City = &city
		return c.Status(fiber.StatusCreated).JSON(newAreaResponses([]models.Area{area})[0])
	}
}

// DELETE /api/admin/areas/:id
func DeleteAreaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var area models.Area
		if err := database.DB.First(&area, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Area not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Property{}).Where("area_id = ?", area.ID).Update("area_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Area{}, "id = ?", area.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete area")
		}

		audit.Record(c, audit.EntityArea, area.ID, models.AuditActionDelete,
			fmt.Sprintf("Area deleted: %s", area.Name), area, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
