package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
)

// NewCalorieLog carries the user-supplied fields for a new log entry.
type NewCalorieLog struct {
	Food     string
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
	MealType string
}

// CalorieService handles business logic for calorie log entries. Every
// operation is scoped to the owning user.
type CalorieService struct {
	logRepo repositories.CalorieLogRepository
}

// NewCalorieService creates a new CalorieService.
func NewCalorieService(logRepo repositories.CalorieLogRepository) *CalorieService {
	return &CalorieService{
		logRepo: logRepo,
	}
}

// Create validates and persists a new entry owned by ownerID.
func (s *CalorieService) Create(ownerID string, input NewCalorieLog) (*models.CalorieLog, error) {
	if strings.TrimSpace(input.Food) == "" {
		return nil, fmt.Errorf("%w: food is required", ErrValidation)
	}
	if input.Calories < 0 {
		return nil, fmt.Errorf("%w: calories must not be negative", ErrValidation)
	}
	if input.Protein < 0 || input.Carbs < 0 || input.Fat < 0 {
		return nil, fmt.Errorf("%w: macros must not be negative", ErrValidation)
	}
	if !models.ValidMealType(input.MealType) {
		return nil, fmt.Errorf("%w: invalid meal type %q", ErrValidation, input.MealType)
	}

	log := &models.CalorieLog{
		UserID:   ownerID,
		Food:     strings.TrimSpace(input.Food),
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		MealType: input.MealType,
		Date:     time.Now(),
	}
	if err := s.logRepo.Create(log); err != nil {
		return nil, fmt.Errorf("failed to create calorie log: %w", err)
	}
	return log, nil
}

// ListByOwner returns all entries owned by ownerID, newest first.
func (s *CalorieService) ListByOwner(ownerID string) ([]models.CalorieLog, error) {
	logs, err := s.logRepo.GetAllByUser(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calorie logs: %w", err)
	}
	return logs, nil
}

// Delete removes an entry if and only if requesterID owns it.
func (s *CalorieService) Delete(id, requesterID string) error {
	log, err := s.logRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: calorie log %s", ErrNotFound, id)
		}
		return err
	}

	if log.UserID != requesterID {
		return fmt.Errorf("%w: calorie log %s belongs to another user", ErrUnauthorized, id)
	}

	if err := s.logRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: calorie log %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
