package blog

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const MaxLimit = 100

// Published returns published posts, newest first. Zero limit means all.
func Published(db *gorm.DB, category string, featuredOnly bool, limit int) ([]models.Blog, error) {
	dbq := db.Model(&models.Blog{}).Where("is_published = ?", true)
	if category != "" {
		dbq = dbq.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if featuredOnly {
		dbq = dbq.Where("featured = ?", true)
	}
	if limit > 0 {
		dbq = dbq.Limit(limit)
	}

	var blogs []models.Blog
	err := dbq.Order("published_date DESC, id DESC").Find(&blogs).Error
	return blogs, err
}

// FindBySlug returns a published post.
func FindBySlug(db *gorm.DB, slug string) (*models.Blog, error) {
	var b models.Blog
	if err := db.Where("slug = ? AND is_published = ?", slug, true).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Categories returns the distinct categories of published posts.
func Categories(db *gorm.DB) ([]string, error) {
	cats := make([]string, 0)
	err := db.Model(&models.Blog{}).
		Where("is_published = ? AND category <> ''", true).
		Distinct("category").Order("category").Pluck("category", &cats).Error
	return cats, err
}

// GET /api/blogs?category=&featured=true&limit=
func ListBlogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= MaxLimit {
			limit = n
		}

		blogs, err := Published(database.DB, strings.TrimSpace(c.Query("category")), c.Query("featured") == "true", limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch blogs")
		}

		return c.JSON(fiber.Map{
			"count":   len(blogs),
			"results": NewBlogResponses(blogs),
		})
	}
}

// GET /api/blogs/categories
func CategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := Categories(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch categories")
		}
		return c.JSON(cats)
	}
}

// GET /api/blogs/:slug
func GetBlogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := url.PathUnescape(c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid slug")
		}

		b, err := FindBySlug(database.DB, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Blog not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch blog")
		}
		return c.JSON(NewBlogResponse(*b))
	}
}
