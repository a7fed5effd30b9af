package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
)

func findBlog(c *fiber.Ctx) (*models.Blog, error) {
	var b models.Blog
	if err := database.DB.First(&b, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Blog not found")
	}
	return &b, nil
}

// GET /api/admin/blogs
func AdminListBlogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var blogs []models.Blog
		if err := database.DB.Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list blogs")
		}
		return c.JSON(NewBlogResponses(blogs))
	}
}

// GET /api/admin/blogs/:id
func AdminGetBlogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := findBlog(c)
		if err != nil {
			return err
		}
		return c.JSON(NewBlogResponse(*b))
	}
}

// POST /api/admin/blogs
func CreateBlogHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BlogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Title == nil || body.Content == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Title and content are required")
		}

		now := time.Now()
		b := models.Blog{IsPublished: true, PublishedDate: now, UpdatedDate: now}
		if err := body.apply(&b); err != nil {
			return err
		}

		if b.Slug == "" {
			slug, err := database.UniqueSlug(database.DB, &models.Blog{}, format.Slugify(b.Title), 0)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate slug")
			}
			b.Slug = slug
		} else if taken, err := database.SlugTaken(database.DB, &models.Blog{}, b.Slug, 0); err != nil || taken {
			return fiber.NewError(fiber.StatusConflict, "A blog with this slug already exists")
		}
		if err := body.storeImages(&b, store); err != nil {
			return err
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create blog")
		}

		audit.Record(c, audit.EntityBlog, b.ID, models.AuditActionCreate,
			fmt.Sprintf("Blog created: %s", b.Title), nil, b)

		return c.Status(fiber.StatusCreated).JSON(NewBlogResponse(b))
	}
}

// PUT /api/admin/blogs/:id
func UpdateBlogHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := findBlog(c)
		if err != nil {
			return err
		}
		before := *b

		var body BlogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		// a changed body gets a fresh excerpt unless one is supplied
		if body.Content != nil && body.Excerpt == nil && *body.Content != before.Content {
			b.Excerpt = ""
		}
		if err := body.apply(b); err != nil {
			return err
		}
		if strings.TrimSpace(b.Slug) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Slug cannot be empty")
		}
		if b.Slug != before.Slug {
			if taken, err := database.SlugTaken(database.DB, &models.Blog{}, b.Slug, b.ID); err != nil || taken {
				return fiber.NewError(fiber.StatusConflict, "A blog with this slug already exists")
			}
		}
		if err := body.storeImages(b, store); err != nil {
			return err
		}
		b.UpdatedDate = time.Now()

		if err := database.DB.Save(b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update blog")
		}

		audit.Record(c, audit.EntityBlog, b.ID, models.AuditActionUpdate,
			fmt.Sprintf("Blog updated: %s", b.Title), before, *b)

		return c.JSON(NewBlogResponse(*b))
	}
}

// DELETE /api/admin/blogs/:id
func DeleteBlogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := findBlog(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.Blog{}, "id = ?", b.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete blog")
		}

		audit.Record(c, audit.EntityBlog, b.ID, models.AuditActionDelete,
			fmt.Sprintf("Blog deleted: %s", b.Title), *b, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
