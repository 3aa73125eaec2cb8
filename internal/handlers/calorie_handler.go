package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sumit6307/Try-Nutri/internal/middleware"
	"github.com/Sumit6307/Try-Nutri/internal/services"
)

// CalorieHandler handles HTTP requests for calorie log entries.
type CalorieHandler struct {
	calorieService *services.CalorieService
	validate       *validator.Validate
}

// NewCalorieHandler creates a new CalorieHandler.
func NewCalorieHandler(calorieService *services.CalorieService) *CalorieHandler {
	return &CalorieHandler{
		calorieService: calorieService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the calorie log routes. The router must already
// apply the auth middleware.
func (h *CalorieHandler) RegisterRoutes(router fiber.Router) {
	calorieRoutes := router.Group("/calories")
	calorieRoutes.Post("/", h.HandleCreateLog)
	calorieRoutes.Get("/", h.HandleGetLogs)
	calorieRoutes.Delete("/:id", h.HandleDeleteLog)
}

// CreateCalorieLogRequest represents the request body for logging a meal.
// Calories is a pointer so that a missing field is distinguishable from 0.
type CreateCalorieLogRequest struct {
	Food     string  `json:"food" validate:"required,min=1,max=200"`
	Calories *int    `json:"calories" validate:"required,gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	MealType string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}

// HandleCreateLog creates a new calorie log entry owned by the caller.
func (h *CalorieHandler) HandleCreateLog(c *fiber.Ctx) error {
	var req CreateCalorieLogRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing calorie log request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	entry, err := h.calorieService.Create(middleware.UserID(c), services.NewCalorieLog{
		Food:     req.Food,
		Calories: *req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		MealType: req.MealType,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error creating calorie log: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(entry)
}

// HandleGetLogs returns all of the caller's entries, newest first.
func (h *CalorieHandler) HandleGetLogs(c *fiber.Ctx) error {
	logs, err := h.calorieService.ListByOwner(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing calorie logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	return c.JSON(logs)
}

// HandleDeleteLog deletes one of the caller's entries.
func (h *CalorieHandler) HandleDeleteLog(c *fiber.Ctx) error {
	logID := c.Params("id")

	if err := h.calorieService.Delete(logID, middleware.UserID(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Log not found",
			})
		case errors.Is(err, services.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		log.Printf("Error deleting calorie log %s: %v", logID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Log deleted",
	})
}
