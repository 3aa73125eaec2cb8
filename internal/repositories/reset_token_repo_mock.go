package repositories

import (
	"fmt"
	"sync"
	"time"
)

// MockResetTokenRepository is an in-memory implementation of ResetTokenRepository.
type MockResetTokenRepository struct {
	used map[string]time.Time
	mu   sync.RWMutex
}

// NewMockResetTokenRepository creates a new instance of MockResetTokenRepository.
func NewMockResetTokenRepository() *MockResetTokenRepository {
	return &MockResetTokenRepository{
		used: make(map[string]time.Time),
	}
}

// MarkUsed records the token id as redeemed.
func (r *MockResetTokenRepository) MarkUsed(tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.used[tokenID]; ok {
		return fmt.Errorf("%w: reset token %s", ErrDuplicate, tokenID)
	}
	r.used[tokenID] = expiresAt
	return nil
}

// IsUsed reports whether the token id has been redeemed before.
func (r *MockResetTokenRepository) IsUsed(tokenID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.used[tokenID]
	return ok, nil
}

// DeleteExpired purges markers whose tokens have expired on their own.
func (r *MockResetTokenRepository) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, exp := range r.used {
		if exp.Before(now) {
			delete(r.used, id)
		}
	}
	return nil
}
