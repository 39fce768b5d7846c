package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
)

type VenueService interface {
	Create(ctx context.Context, input VenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]*models.Venue, error)
	Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	Delete(ctx context.Context, id int) error
}

type VenueInput struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
	Active   *bool   `json:"active"`
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) Create(ctx context.Context, input VenueInput) (*models.Venue, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: venue name is required", ErrValidationFailed)
	}

	venue := &models.Venue{Name: name, Location: input.Location, Active: true}
	if input.Active != nil {
		venue.Active = *input.Active
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, ErrVenueNameConflict
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue %d: %w", id, err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to load venue %d: %w", id, err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		venue.Name = name
	}
	if input.Location != nil {
		venue.Location = input.Location
	}
	if input.Active != nil {
		venue.Active = *input.Active
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, ErrVenueNameConflict
		}
		return nil, fmt.Errorf("failed to update venue %d: %w", id, err)
	}
	return venue, nil
}

func (s *venueService) Delete(ctx context.Context, id int) error {
	err := s.venueRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrVenueNotFound):
			return ErrVenueNotFound
		case errors.Is(err, repositories.ErrVenueInUse):
			return fmt.Errorf("%w: venue is referenced by matches", ErrForbiddenOperation)
		default:
			return fmt.Errorf("failed to delete venue %d: %w", id, err)
		}
	}
	return nil
}
