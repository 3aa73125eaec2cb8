package repositories

import "github.com/Sumit6307/Try-Nutri/internal/models"

// CalorieLogRepository defines the interface for calorie log data access.
// Listing is always scoped to an owner; there is no cross-user query.
type CalorieLogRepository interface {
	Create(log *models.CalorieLog) error
	GetByID(id string) (*models.CalorieLog, error)
	GetAllByUser(userID string) ([]models.CalorieLog, error)
	Delete(id string) error
}
