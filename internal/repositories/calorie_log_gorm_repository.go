package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sumit6307/Try-Nutri/internal/models"
)

// GORMCalorieLogRepository is a GORM implementation of CalorieLogRepository.
type GORMCalorieLogRepository struct {
	db *gorm.DB
}

// NewGORMCalorieLogRepository creates a new instance of GORMCalorieLogRepository.
func NewGORMCalorieLogRepository(db *gorm.DB) *GORMCalorieLogRepository {
	return &GORMCalorieLogRepository{
		db: db,
	}
}

// Create creates a new calorie log entry in the database.
func (r *GORMCalorieLogRepository) Create(log *models.CalorieLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create calorie log: %w", err)
	}
	return nil
}

// GetByID retrieves a single calorie log entry by its ID.
func (r *GORMCalorieLogRepository) GetByID(id string) (*models.CalorieLog, error) {
	var log models.CalorieLog
	if err := r.db.First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: calorie log with ID %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get calorie log by ID %s: %w", id, err)
	}
	return &log, nil
}

// GetAllByUser retrieves all calorie log entries owned by a user, newest first.
func (r *GORMCalorieLogRepository) GetAllByUser(userID string) ([]models.CalorieLog, error) {
	var logs []models.CalorieLog
	if err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get calorie logs for user %s: %w", userID, err)
	}
	return logs, nil
}

// Delete removes a calorie log entry by its ID.
func (r *GORMCalorieLogRepository) Delete(id string) error {
	res := r.db.Delete(&models.CalorieLog{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete calorie log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: calorie log with ID %s", ErrNotFound, id)
	}
	return nil
}
