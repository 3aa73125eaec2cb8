package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
	"github.com/Sumit6307/Try-Nutri/internal/services"
)

func TestUserService_GetProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	pool := newTestPool()
	defer pool.Close()
	userService := services.NewUserService(mockRepo, pool)

	user := &models.User{ID: "user-123", Name: "Jane", Email: "jane@x.com"}

	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	got, err := userService.GetProfile("user-123")
	assert.NoError(t, err)
	assert.Equal(t, user, got)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()
	_, err = userService.GetProfile("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	pool := newTestPool()
	defer pool.Close()
	userService := services.NewUserService(mockRepo, pool)

	weight := 72.5
	goal := models.GoalLoseWeight

	// Invalid inputs are rejected before any store access
	_, err := userService.UpdateProfile("user-123", services.ProfileUpdate{Name: "   "})
	assert.ErrorIs(t, err, services.ErrValidation)

	badWeight := -3.0
	_, err = userService.UpdateProfile("user-123", services.ProfileUpdate{Name: "Jane", Weight: &badWeight})
	assert.ErrorIs(t, err, services.ErrValidation)

	badGoal := "Get Shredded"
	_, err = userService.UpdateProfile("user-123", services.ProfileUpdate{Name: "Jane", Goal: &badGoal})
	assert.ErrorIs(t, err, services.ErrValidation)

	// Successful partial update: only supplied fields change
	existingWeight := 80.0
	user := &models.User{ID: "user-123", Name: "Jane", Email: "jane@x.com", Weight: &existingWeight, Goal: models.GoalMaintain}
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()

	updated, err := userService.UpdateProfile("user-123", services.ProfileUpdate{Name: "Jane D", Weight: &weight, Goal: &goal})
	assert.NoError(t, err)
	assert.Equal(t, "Jane D", updated.Name)
	assert.Equal(t, &weight, updated.Weight)
	assert.Equal(t, models.GoalLoseWeight, updated.Goal)
	mockRepo.AssertExpectations(t)

	// Name only: weight and goal are preserved
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()
	updated, err = userService.UpdateProfile("user-123", services.ProfileUpdate{Name: "Jane"})
	assert.NoError(t, err)
	assert.Equal(t, "Jane", updated.Name)
	assert.Equal(t, &weight, updated.Weight)
	assert.Equal(t, models.GoalLoseWeight, updated.Goal)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ChangePassword(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	pool := newTestPool()
	defer pool.Close()
	userService := services.NewUserService(userRepo, pool)

	oldHash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	user := &models.User{
		Name:              "Jane",
		Email:             "jane@x.com",
		Password:          string(oldHash),
		PasswordChangedAt: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, userRepo.Create(user))

	// Wrong current password
	err := userService.ChangePassword(context.Background(), user.ID, "wrong", "newpass1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	unchanged, _ := userRepo.GetByID(user.ID)
	assert.Equal(t, string(oldHash), unchanged.Password)

	// Correct current password replaces the hash and bumps PasswordChangedAt
	before := unchanged.PasswordChangedAt
	err = userService.ChangePassword(context.Background(), user.ID, "secret1", "newpass1")
	assert.NoError(t, err)

	changed, _ := userRepo.GetByID(user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(changed.Password), []byte("newpass1")))
	assert.True(t, changed.PasswordChangedAt.After(before))

	// Unknown user
	err = userService.ChangePassword(context.Background(), "ghost", "secret1", "newpass1")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
