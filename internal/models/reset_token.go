package models

import "time"

// UsedResetToken records a redeemed password-reset token id so the token
// cannot be redeemed a second time before its natural expiry. Rows become
// garbage once ExpiresAt passes and are purged periodically.
type UsedResetToken struct {
	TokenID   string    `gorm:"primaryKey;type:varchar(36)"`
	ExpiresAt time.Time `gorm:"index"`
}
