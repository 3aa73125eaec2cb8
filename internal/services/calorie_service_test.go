package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
	"github.com/Sumit6307/Try-Nutri/internal/services"
)

func TestCalorieService_Create(t *testing.T) {
	service := services.NewCalorieService(repositories.NewMockCalorieLogRepository())

	entry, err := service.Create("user-1", services.NewCalorieLog{
		Food:     "Apple",
		Calories: 95,
		MealType: models.MealSnack,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "Apple", entry.Food)
	assert.Equal(t, 95, entry.Calories)
	assert.Zero(t, entry.Protein)
	assert.False(t, entry.Date.IsZero())

	// Zero calories is a valid entry
	_, err = service.Create("user-1", services.NewCalorieLog{Food: "Water", Calories: 0, MealType: models.MealSnack})
	assert.NoError(t, err)

	// Invalid inputs
	_, err = service.Create("user-1", services.NewCalorieLog{Food: "  ", Calories: 10, MealType: models.MealLunch})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.Create("user-1", services.NewCalorieLog{Food: "Apple", Calories: -1, MealType: models.MealLunch})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.Create("user-1", services.NewCalorieLog{Food: "Apple", Calories: 10, Protein: -2, MealType: models.MealLunch})
	assert.ErrorIs(t, err, services.ErrValidation)

	// "snacks" from the old data model is not accepted
	_, err = service.Create("user-1", services.NewCalorieLog{Food: "Apple", Calories: 10, MealType: "snacks"})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCalorieService_ListByOwner(t *testing.T) {
	service := services.NewCalorieService(repositories.NewMockCalorieLogRepository())

	first, err := service.Create("user-1", services.NewCalorieLog{Food: "Oatmeal", Calories: 300, MealType: models.MealBreakfast})
	assert.NoError(t, err)
	second, err := service.Create("user-1", services.NewCalorieLog{Food: "Salad", Calories: 200, MealType: models.MealLunch})
	assert.NoError(t, err)
	_, err = service.Create("user-2", services.NewCalorieLog{Food: "Pizza", Calories: 800, MealType: models.MealDinner})
	assert.NoError(t, err)

	// Only the owner's entries, newest first
	logs, err := service.ListByOwner("user-1")
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID)
	assert.Equal(t, first.ID, logs[1].ID)

	// Listing twice without writes returns the same set in the same order
	again, err := service.ListByOwner("user-1")
	assert.NoError(t, err)
	assert.Equal(t, logs, again)

	// A user with no entries gets an empty list
	empty, err := service.ListByOwner("user-3")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCalorieService_Delete(t *testing.T) {
	service := services.NewCalorieService(repositories.NewMockCalorieLogRepository())

	entry, err := service.Create("user-1", services.NewCalorieLog{Food: "Apple", Calories: 95, MealType: models.MealSnack})
	assert.NoError(t, err)

	// Missing entry
	err = service.Delete("no-such-id", "user-1")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// A non-owner is rejected even though the entry exists
	err = service.Delete(entry.ID, "user-2")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	logs, err := service.ListByOwner("user-1")
	assert.NoError(t, err)
	assert.Len(t, logs, 1)

	// The owner may delete
	err = service.Delete(entry.ID, "user-1")
	assert.NoError(t, err)

	logs, err = service.ListByOwner("user-1")
	assert.NoError(t, err)
	assert.Empty(t, logs)
}
