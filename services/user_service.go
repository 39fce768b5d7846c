package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, role *models.UserRole) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error)
	SetRole(ctx context.Context, id int, role models.UserRole) (*models.User, error)
	Deactivate(ctx context.Context, id int) error
}

type UpdateProfileInput struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    *string    `json:"gender"`
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	sanitizeUser(user)
	return user, nil
}

func (s *userService) List(ctx context.Context, role *models.UserRole) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		sanitizeUser(u)
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrValidationFailed)
		}
		user.FirstName = name
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	sanitizeUser(user)
	return user, nil
}

func (s *userService) SetRole(ctx context.Context, id int, role models.UserRole) (*models.User, error) {
	switch role {
	case models.RoleAdmin, models.RoleOrganizer, models.RoleDelegate:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role for user %d: %w", id, err)
	}
	sanitizeUser(user)
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, id int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user %d: %w", id, err)
	}

	user.Active = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user %d: %w", id, err)
	}
	return nil
}
