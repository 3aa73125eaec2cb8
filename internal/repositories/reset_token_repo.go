package repositories

import "time"

// ResetTokenRepository tracks redeemed password-reset token ids so a reset
// token can only be used once within its lifetime.
type ResetTokenRepository interface {
	MarkUsed(tokenID string, expiresAt time.Time) error
	IsUsed(tokenID string) (bool, error)
	DeleteExpired(now time.Time) error
}
