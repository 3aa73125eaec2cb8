package models

import "time"

// Meal type values. "snack" is the canonical spelling.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// CalorieLog represents a single logged meal owned by one user.
// Entries are never edited in place; corrections are delete + recreate.
type CalorieLog struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID   string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Food     string    `json:"food" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Calories int       `json:"calories" validate:"gte=0"`
	Protein  float64   `json:"protein" validate:"gte=0"`
	Carbs    float64   `json:"carbs" validate:"gte=0"`
	Fat      float64   `json:"fat" validate:"gte=0"`
	MealType string    `json:"mealType" gorm:"type:varchar(20)" validate:"required,oneof=breakfast lunch dinner snack"`
	Date     time.Time `json:"date"`
}

// ValidMealType reports whether m is one of the supported meal types.
func ValidMealType(m string) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
