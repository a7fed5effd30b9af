package admin

import (
	"strings"

	"github.com/KAMASDM/naishad/internal/auth"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // defaults to editor
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// CreateUser validates and stores a new admin account. Shared with the CLI.
func CreateUser(name, email, password string, role models.UserRole) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = auth.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
	}
	if role == "" {
		role = models.RoleEditor
	}
	if role != models.RoleEditor && role != models.RoleSuperAdmin {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Role must be 'editor' or 'super_admin'")
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "This email is already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
	}
	return &user, nil
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		res := make([]auth.UserResponse, 0, len(users))
		for i := range users {
			res = append(res, auth.NewUserResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := CreateUser(body.Name, body.Email, body.Password, models.UserRole(body.Role))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(auth.NewUserResponse(user))
	}
}

// PUT /api/admin/users/:id/password
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			return err
		}
		if err := database.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update password")
		}
		return c.JSON(fiber.Map{"message": "Password updated"})
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if user.ID == current.ID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
		}
		if user.Role == models.RoleSuperAdmin {
			var supers int64
			database.DB.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&supers)
			if supers <= 1 {
				return fiber.NewError(fiber.StatusBadRequest, "The last super admin cannot be deleted")
			}
		}

		if err := database.DB.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
