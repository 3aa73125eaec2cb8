package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Sumit6307/Try-Nutri/internal/models"
)

// MockCalorieLogRepository is an in-memory implementation of CalorieLogRepository.
type MockCalorieLogRepository struct {
	logs map[string]models.CalorieLog
	mu   sync.RWMutex
}

// NewMockCalorieLogRepository creates a new instance of MockCalorieLogRepository.
func NewMockCalorieLogRepository() *MockCalorieLogRepository {
	return &MockCalorieLogRepository{
		logs: make(map[string]models.CalorieLog),
	}
}

// Create adds a new calorie log entry.
func (r *MockCalorieLogRepository) Create(log *models.CalorieLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	r.logs[log.ID] = *log
	return nil
}

// GetByID returns a calorie log entry by its ID.
func (r *MockCalorieLogRepository) GetByID(id string) (*models.CalorieLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[id]
	if !ok {
		return nil, fmt.Errorf("%w: calorie log with ID %s", ErrNotFound, id)
	}
	return &log, nil
}

// GetAllByUser returns all entries owned by a user, newest first.
func (r *MockCalorieLogRepository) GetAllByUser(userID string) ([]models.CalorieLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]models.CalorieLog, 0)
	for _, log := range r.logs {
		if log.UserID == userID {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date.Equal(logs[j].Date) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Date.After(logs[j].Date)
	})
	return logs, nil
}

// Delete removes a calorie log entry.
func (r *MockCalorieLogRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.logs[id]; !ok {
		return fmt.Errorf("%w: calorie log with ID %s", ErrNotFound, id)
	}
	delete(r.logs, id)
	return nil
}
