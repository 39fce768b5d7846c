package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/JDR69/DeporteDubss/storage"
)

var ErrChampionshipNameRequired = errors.New("championship name is required")

type ChampionshipService interface {
	Create(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error)
	GetByID(ctx context.Context, id int) (*models.Championship, error)
	List(ctx context.Context, filter repositories.ListChampionshipsFilter) ([]models.Championship, error)
	Update(ctx context.Context, id int, input UpdateChampionshipInput) (*models.Championship, error)
	UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) (*models.Championship, error)
	Delete(ctx context.Context, id int) error

	UploadLogo(ctx context.Context, championshipID int, contentType string, reader io.Reader) (*models.Championship, error)

	EnrollTeam(ctx context.Context, championshipID, teamID int) error
	WithdrawTeam(ctx context.Context, championshipID, teamID int) error
	ListEnrolledTeams(ctx context.Context, championshipID int) ([]models.Team, error)

	// SyncStatusesByDate moves championships whose dates have passed into the
	// next status. Called from the background scheduler.
	SyncStatusesByDate(ctx context.Context, now time.Time) (int, error)
}

type CreateChampionshipInput struct {
	OrganizerID int        `json:"organizer_id"`
	SportID     int        `json:"sport_id"`
	Name        string     `json:"name"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateChampionshipInput struct {
	SportID   *int       `json:"sport_id"`
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type championshipService struct {
	db               *sql.DB
	championshipRepo repositories.ChampionshipRepository
	matchDayRepo     repositories.MatchDayRepository
	standingRepo     repositories.StandingRepository
	userRepo         repositories.UserRepository
	sportRepo        repositories.SportRepository
	uploader         storage.FileUploader
}

func NewChampionshipService(
	db *sql.DB,
	championshipRepo repositories.ChampionshipRepository,
	matchDayRepo repositories.MatchDayRepository,
	standingRepo repositories.StandingRepository,
	userRepo repositories.UserRepository,
	sportRepo repositories.SportRepository,
	uploader storage.FileUploader,
) ChampionshipService {
	return &championshipService{
		db:               db,
		championshipRepo: championshipRepo,
		matchDayRepo:     matchDayRepo,
		standingRepo:     standingRepo,
		userRepo:         userRepo,
		sportRepo:        sportRepo,
		uploader:         uploader,
	}
}

func (s *championshipService) Create(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrChampionshipNameRequired
	}
	if err := validateChampionshipDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	organizer, err := s.userRepo.GetByID(ctx, input.OrganizerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load organizer %d: %w", input.OrganizerID, err)
	}
	if organizer.Role != models.RoleOrganizer && organizer.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: user %d cannot organize championships", ErrForbiddenOperation, organizer.ID)
	}

	championship := &models.Championship{
		OrganizerID: input.OrganizerID,
		SportID:     input.SportID,
		Name:        name,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.ChampionshipPending,
	}

	if err := s.championshipRepo.Create(ctx, championship); err != nil {
		switch {
		case errors.Is(err, repositories.ErrChampionshipNameConflict):
			return nil, ErrChampionshipNameConflict
		case errors.Is(err, repositories.ErrChampionshipInvalidSport):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrChampionshipInvalidOrganizer):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to create championship: %w", err)
		}
	}
	return championship, nil
}

func (s *championshipService) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to get championship %d: %w", id, err)
	}

	s.populateDetails(ctx, championship)
	return championship, nil
}

func (s *championshipService) List(ctx context.Context, filter repositories.ListChampionshipsFilter) ([]models.Championship, error) {
	championships, err := s.championshipRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	for i := range championships {
		populateChampionshipLogoURL(&championships[i], s.uploader)
	}
	return championships, nil
}

func (s *championshipService) Update(ctx context.Context, id int, input UpdateChampionshipInput) (*models.Championship, error) {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrChampionshipNameRequired
		}
		championship.Name = name
	}
	if input.SportID != nil {
		championship.SportID = *input.SportID
	}
	if input.StartDate != nil {
		championship.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		championship.EndDate = input.EndDate
	}
	if err := validateChampionshipDates(championship.StartDate, championship.EndDate); err != nil {
		return nil, err
	}

	if err := s.championshipRepo.Update(ctx, championship); err != nil {
		switch {
		case errors.Is(err, repositories.ErrChampionshipNameConflict):
			return nil, ErrChampionshipNameConflict
		case errors.Is(err, repositories.ErrChampionshipInvalidSport):
			return nil, ErrSportNotFound
		default:
			return nil, fmt.Errorf("failed to update championship %d: %w", id, err)
		}
	}
	return championship, nil
}

func (s *championshipService) UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) (*models.Championship, error) {
	switch status {
	case models.ChampionshipPending, models.ChampionshipInProgress, models.ChampionshipFinished:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, status)
	}

	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", id, err)
	}

	if !isValidStatusTransition(championship.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, championship.Status, status)
	}

	if err := s.championshipRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, fmt.Errorf("failed to update status for championship %d: %w", id, err)
	}
	championship.Status = status
	return championship, nil
}

func (s *championshipService) Delete(ctx context.Context, id int) error {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return ErrChampionshipNotFound
		}
		return fmt.Errorf("failed to load championship %d: %w", id, err)
	}
	if championship.Status == models.ChampionshipInProgress {
		return fmt.Errorf("%w: championship is in progress", ErrForbiddenOperation)
	}

	if err := s.championshipRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete championship %d: %w", id, err)
	}
	if championship.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *championship.LogoKey)
	}
	return nil
}

func (s *championshipService) UploadLogo(ctx context.Context, championshipID int, contentType string, reader io.Reader) (*models.Championship, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}
	championship, err := s.championshipRepo.GetByID(ctx, championshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("championships/%d/logo%s", championshipID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for championship %d: %w", championshipID, err)
	}

	oldKey := championship.LogoKey
	if err := s.championshipRepo.UpdateLogoKey(ctx, championshipID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save logo key for championship %d: %w", championshipID, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	championship.LogoKey = &result.Key
	populateChampionshipLogoURL(championship, s.uploader)
	return championship, nil
}

// EnrollTeam adds a team to the roster and creates its zeroed standings row in
// the same transaction, so the table always lists every enrolled team.
func (s *championshipService) EnrollTeam(ctx context.Context, championshipID, teamID int) error {
	if err := s.ensureRosterOpen(ctx, championshipID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin enrollment transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.championshipRepo.EnrollTeam(ctx, tx, championshipID, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEnrollmentConflict):
			return ErrEnrollmentConflict
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrChampionshipNotFound):
			return ErrChampionshipNotFound
		default:
			return fmt.Errorf("failed to enroll team %d: %w", teamID, err)
		}
	}

	row := &models.StandingsRow{ChampionshipID: championshipID, TeamID: teamID}
	if err := s.standingRepo.Create(ctx, tx, row); err != nil {
		return fmt.Errorf("failed to create standings row for team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit enrollment: %w", err)
	}
	return nil
}

func (s *championshipService) WithdrawTeam(ctx context.Context, championshipID, teamID int) error {
	if err := s.ensureRosterOpen(ctx, championshipID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin withdrawal transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.championshipRepo.WithdrawTeam(ctx, tx, championshipID, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to withdraw team %d: %w", teamID, err)
	}
	if err := s.standingRepo.DeleteByChampionshipAndTeam(ctx, tx, championshipID, teamID); err != nil &&
		!errors.Is(err, repositories.ErrStandingNotFound) {
		return fmt.Errorf("failed to remove standings row for team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit withdrawal: %w", err)
	}
	return nil
}

func (s *championshipService) ListEnrolledTeams(ctx context.Context, championshipID int) ([]models.Team, error) {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	teams, err := s.championshipRepo.ListEnrolledTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *championshipService) SyncStatusesByDate(ctx context.Context, now time.Time) (int, error) {
	pending := models.ChampionshipPending
	inProgress := models.ChampionshipInProgress

	updated := 0

	toStart, err := s.championshipRepo.List(ctx, repositories.ListChampionshipsFilter{Status: &pending})
	if err != nil {
		return 0, fmt.Errorf("failed to list pending championships: %w", err)
	}
	for _, c := range toStart {
		if c.StartDate != nil && !c.StartDate.After(now) {
			if err := s.championshipRepo.UpdateStatus(ctx, nil, c.ID, models.ChampionshipInProgress); err != nil {
				return updated, fmt.Errorf("failed to start championship %d: %w", c.ID, err)
			}
			updated++
		}
	}

	toFinish, err := s.championshipRepo.List(ctx, repositories.ListChampionshipsFilter{Status: &inProgress})
	if err != nil {
		return updated, fmt.Errorf("failed to list running championships: %w", err)
	}
	for _, c := range toFinish {
		if c.EndDate != nil && c.EndDate.Before(now) {
			if err := s.championshipRepo.UpdateStatus(ctx, nil, c.ID, models.ChampionshipFinished); err != nil {
				return updated, fmt.Errorf("failed to finish championship %d: %w", c.ID, err)
			}
			updated++
		}
	}
	return updated, nil
}

// ensureRosterOpen rejects roster changes once the fixture has been generated.
func (s *championshipService) ensureRosterOpen(ctx context.Context, championshipID int) error {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return ErrChampionshipNotFound
		}
		return fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	count, err := s.matchDayRepo.CountByChampionship(ctx, championshipID)
	if err != nil {
		return fmt.Errorf("failed to check fixture for championship %d: %w", championshipID, err)
	}
	if count > 0 {
		return ErrRosterLocked
	}
	return nil
}

func (s *championshipService) populateDetails(ctx context.Context, c *models.Championship) {
	populateChampionshipLogoURL(c, s.uploader)

	if c.Organizer == nil && c.OrganizerID > 0 {
		if organizer, err := s.userRepo.GetByID(ctx, c.OrganizerID); err == nil {
			sanitizeUser(organizer)
			c.Organizer = organizer
		}
	}
	if c.Sport == nil && c.SportID > 0 {
		if sport, err := s.sportRepo.GetByID(ctx, c.SportID); err == nil {
			c.Sport = sport
		}
	}
}
