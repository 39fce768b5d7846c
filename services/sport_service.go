package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
)

var ErrSportNameRequired = errors.New("sport name is required")

type SportService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)

	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	ListSports(ctx context.Context) ([]*models.Sport, error)
	UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
}

type CreateSportInput struct {
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
}

type UpdateSportInput struct {
	Name       *string `json:"name"`
	CategoryID *int    `json:"category_id"`
}

type sportService struct {
	sportRepo repositories.SportRepository
}

func NewSportService(sportRepo repositories.SportRepository) SportService {
	return &sportService{sportRepo: sportRepo}
}

func (s *sportService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}

	category := &models.Category{Name: name}
	if err := s.sportRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameConflict) {
			return nil, ErrCategoryNameConflict
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *sportService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.sportRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}

	sport := &models.Sport{Name: name, CategoryID: input.CategoryID}
	if err := s.sportRepo.Create(ctx, sport); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		default:
			return nil, fmt.Errorf("failed to create sport: %w", err)
		}
	}
	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport %d: %w", id, err)
	}
	return sport, nil
}

func (s *sportService) ListSports(ctx context.Context) ([]*models.Sport, error) {
	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to load sport %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSportNameRequired
		}
		sport.Name = name
	}
	if input.CategoryID != nil {
		sport.CategoryID = *input.CategoryID
	}

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		default:
			return nil, fmt.Errorf("failed to update sport %d: %w", id, err)
		}
	}
	return sport, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := s.sportRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return fmt.Errorf("%w: sport is referenced by championships", ErrForbiddenOperation)
		default:
			return fmt.Errorf("failed to delete sport %d: %w", id, err)
		}
	}
	return nil
}
