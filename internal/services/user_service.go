package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
	"github.com/Sumit6307/Try-Nutri/pkg/hashpool"
)

// ProfileUpdate carries the fields a user may change on their profile.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Name   string
	Weight *float64
	Goal   *string
}

// UserService handles profile reads/updates and password changes.
type UserService struct {
	userRepo repositories.UserRepository
	hasher   *hashpool.Pool
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, hasher *hashpool.Pool) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// GetProfile returns the user record for the given id.
func (s *UserService) GetProfile(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the supplied fields to the user's profile. Only
// fields present in the update are touched.
func (s *UserService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if update.Weight != nil && *update.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be a positive number", ErrValidation)
	}
	if update.Goal != nil && *update.Goal != "" && !models.ValidGoal(*update.Goal) {
		return nil, fmt.Errorf("%w: invalid goal", ErrValidation)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}

	user.Name = name
	if update.Weight != nil {
		user.Weight = update.Weight
	}
	if update.Goal != nil && *update.Goal != "" {
		user.Goal = *update.Goal
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it with a new
// hash. Outstanding login tokens issued before the change stop working.
func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return err
	}

	if err := s.hasher.Compare(ctx, user.Password, currentPassword); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidCredentials)
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	user.PasswordChangedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}
