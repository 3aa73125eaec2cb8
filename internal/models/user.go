package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal values a user may pick for their diet plan.
const (
	GoalMaintain   = "Maintain"
	GoalLoseWeight = "Lose Weight"
	GoalGainMuscle = "Gain Muscle"
)

// User represents a registered user of the app.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string   `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email    string   `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string   `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Weight   *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Goal     string   `json:"goal,omitempty" gorm:"type:varchar(20)" validate:"omitempty,oneof='Maintain' 'Lose Weight' 'Gain Muscle'"`
	// TrialStart is set once at registration and never changes afterwards.
	TrialStart time.Time `json:"trialStart"`
	// PasswordChangedAt gates login tokens: tokens issued before it are rejected.
	PasswordChangedAt time.Time `json:"-"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ValidGoal reports whether g is one of the supported goal values.
func ValidGoal(g string) bool {
	switch g {
	case GoalMaintain, GoalLoseWeight, GoalGainMuscle:
		return true
	}
	return false
}
