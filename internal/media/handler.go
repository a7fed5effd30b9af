package media

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HTTPError converts media errors into client-facing fiber errors.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, ErrTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image is too large")
	case errors.Is(err, ErrNotImage), errors.Is(err, ErrBadDataURL), errors.Is(err, ErrEmptyUpload):
		return fiber.NewError(fiber.StatusBadRequest, "Please upload a valid image file")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Image could not be processed")
	}
}

// POST /api/admin/media?kind=primary|gallery|content (multipart field "file")
func UploadHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be uploaded")
		}

		opts := OptionsFor(c.Query("kind"))
		if fileHeader.Size > opts.MaxBytes {
			return HTTPError(ErrTooLarge)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened")
		}
		defer file.Close()

		url, err := store.Save(file, opts)
		if err != nil {
			return HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	}
}
