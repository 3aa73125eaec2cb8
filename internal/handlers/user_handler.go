package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sumit6307/Try-Nutri/internal/middleware"
	"github.com/Sumit6307/Try-Nutri/internal/services"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. The router must already apply
// the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
	userRoutes.Put("/change-password", h.HandleChangePassword)
}

// HandleGetProfile returns the authenticated user's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error getting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for a profile update.
// Weight and goal are optional; absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name   string   `json:"name" validate:"required,min=1,max=100"`
	Weight *float64 `json:"weight"`
	Goal   *string  `json:"goal"`
}

// HandleUpdateProfile updates name, weight, and goal.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfile(middleware.UserID(c), services.ProfileUpdate{
		Name:   req.Name,
		Weight: req.Weight,
		Goal:   req.Goal,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// HandleChangePassword verifies the current password and replaces it.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing change-password request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.ChangePassword(c.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Current password is incorrect",
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error changing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}
