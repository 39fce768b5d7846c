package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/JDR69/DeporteDubss/storage"
)

var ErrTeamNameRequired = errors.New("team name is required")

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, onlyActive bool) ([]*models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error

	UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)

	AddPlayer(ctx context.Context, teamID, userID int, note *string) error
	RemovePlayer(ctx context.Context, userID int) error
	ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
}

type CreateTeamInput struct {
	Name       string `json:"name"`
	DelegateID int    `json:"delegate_id"`
}

type UpdateTeamInput struct {
	Name       *string `json:"name"`
	DelegateID *int    `json:"delegate_id"`
	Active     *bool   `json:"active"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	delegate, err := s.userRepo.GetByID(ctx, input.DelegateID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load delegate %d: %w", input.DelegateID, err)
	}
	if delegate.Role != models.RoleDelegate && delegate.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: user %d is not a delegate", ErrForbiddenOperation, delegate.ID)
	}

	team := &models.Team{
		Name:       name,
		DelegateID: input.DelegateID,
		Active:     true,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	players, err := s.teamRepo.ListPlayers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) List(ctx context.Context, onlyActive bool) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.DelegateID != nil {
		team.DelegateID = *input.DelegateID
	}
	if input.Active != nil {
		team.Active = *input.Active
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamDelegateInvalid):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", id, err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamInUse) {
			return fmt.Errorf("%w: team is referenced by matches or standings", ErrForbiddenOperation)
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save logo key for team %d: %w", teamID, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &result.Key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) AddPlayer(ctx context.Context, teamID, userID int, note *string) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	player := &models.Player{UserID: userID, TeamID: teamID, Note: note}
	if err := s.teamRepo.AddPlayer(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerConflict) {
			return ErrPlayerAlreadyOnTeam
		}
		return fmt.Errorf("failed to add player %d to team %d: %w", userID, teamID, err)
	}
	return nil
}

func (s *teamService) RemovePlayer(ctx context.Context, userID int) error {
	if err := s.teamRepo.RemovePlayer(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to remove player %d: %w", userID, err)
	}
	return nil
}

func (s *teamService) ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.teamRepo.ListPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}
