package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes user administration operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GrantAdmin(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GrantAdmin marks the user with email as an administrator. Granting twice is a no-op.
func (s *userService) GrantAdmin(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.IsAdmin {
		return user, nil
	}

	user.IsAdmin = true
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	return user, nil
}
