package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sumit6307/Try-Nutri/internal/models"
)

// GORMResetTokenRepository is a GORM implementation of ResetTokenRepository.
type GORMResetTokenRepository struct {
	db *gorm.DB
}

// NewGORMResetTokenRepository creates a new instance of GORMResetTokenRepository.
func NewGORMResetTokenRepository(db *gorm.DB) *GORMResetTokenRepository {
	return &GORMResetTokenRepository{
		db: db,
	}
}

// MarkUsed records the token id as redeemed. Marking an already-used token
// fails with ErrDuplicate, which closes the double-redemption race.
func (r *GORMResetTokenRepository) MarkUsed(tokenID string, expiresAt time.Time) error {
	used := models.UsedResetToken{TokenID: tokenID, ExpiresAt: expiresAt}
	if err := r.db.Create(&used).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: reset token %s", ErrDuplicate, tokenID)
		}
		return fmt.Errorf("failed to mark reset token as used: %w", err)
	}
	return nil
}

// IsUsed reports whether the token id has been redeemed before.
func (r *GORMResetTokenRepository) IsUsed(tokenID string) (bool, error) {
	var used models.UsedResetToken
	if err := r.db.First(&used, "token_id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check reset token %s: %w", tokenID, err)
	}
	return true, nil
}

// DeleteExpired purges markers whose tokens have expired on their own.
func (r *GORMResetTokenRepository) DeleteExpired(now time.Time) error {
	if err := r.db.Delete(&models.UsedResetToken{}, "expires_at < ?", now).Error; err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return nil
}
