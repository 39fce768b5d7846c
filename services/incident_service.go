package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
)

type IncidentService interface {
	Report(ctx context.Context, input ReportIncidentInput) (*models.Incident, error)
	GetByID(ctx context.Context, id int) (*models.Incident, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Incident, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Incident, error)
	Delete(ctx context.Context, id int) error
}

type ReportIncidentInput struct {
	MatchID     int                 `json:"match_id"`
	TeamID      *int                `json:"team_id"`
	PlayerID    *int                `json:"player_id"`
	Kind        models.IncidentKind `json:"kind"`
	Minute      *int                `json:"minute"`
	Description string              `json:"description"`
}

type incidentService struct {
	incidentRepo repositories.IncidentRepository
	matchRepo    repositories.MatchRepository
}

func NewIncidentService(incidentRepo repositories.IncidentRepository, matchRepo repositories.MatchRepository) IncidentService {
	return &incidentService{
		incidentRepo: incidentRepo,
		matchRepo:    matchRepo,
	}
}

func (s *incidentService) Report(ctx context.Context, input ReportIncidentInput) (*models.Incident, error) {
	switch input.Kind {
	case models.IncidentYellowCard, models.IncidentRedCard, models.IncidentInjury, models.IncidentOther:
	default:
		return nil, fmt.Errorf("%w: unknown incident kind %q", ErrValidationFailed, input.Kind)
	}
	if input.Minute != nil && *input.Minute < 0 {
		return nil, fmt.Errorf("%w: minute cannot be negative", ErrValidationFailed)
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidationFailed)
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", input.MatchID, err)
	}
	if input.TeamID != nil && *input.TeamID != match.HomeTeamID && *input.TeamID != match.AwayTeamID {
		return nil, fmt.Errorf("%w: team %d is not playing in match %d", ErrValidationFailed, *input.TeamID, match.ID)
	}

	incident := &models.Incident{
		MatchID:     input.MatchID,
		TeamID:      input.TeamID,
		PlayerID:    input.PlayerID,
		Kind:        input.Kind,
		Minute:      input.Minute,
		Description: description,
	}
	if err := s.incidentRepo.Create(ctx, incident); err != nil {
		if errors.Is(err, repositories.ErrIncidentMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}
	return incident, nil
}

func (s *incidentService) GetByID(ctx context.Context, id int) (*models.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrIncidentNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to get incident %d: %w", id, err)
	}
	return incident, nil
}

func (s *incidentService) ListByMatch(ctx context.Context, matchID int) ([]*models.Incident, error) {
	incidents, err := s.incidentRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents for match %d: %w", matchID, err)
	}
	return incidents, nil
}

func (s *incidentService) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Incident, error) {
	incidents, err := s.incidentRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents for championship %d: %w", championshipID, err)
	}
	return incidents, nil
}

func (s *incidentService) Delete(ctx context.Context, id int) error {
	if err := s.incidentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrIncidentNotFound) {
			return ErrIncidentNotFound
		}
		return fmt.Errorf("failed to delete incident %d: %w", id, err)
	}
	return nil
}
