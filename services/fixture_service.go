package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JDR69/DeporteDubss/league"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"golang.org/x/sync/errgroup"
)

// Match days are spaced one week apart starting from the championship start
// date.
const matchDayInterval = 7 * 24 * time.Hour

type FixtureService interface {
	// GenerateFixture builds the full single round-robin schedule for the
	// championship roster and persists it atomically. The championship moves
	// to in_progress in the same transaction.
	GenerateFixture(ctx context.Context, championshipID int) ([]*models.MatchDay, error)
	GetFixture(ctx context.Context, championshipID int) ([]*models.MatchDay, error)
	RescheduleMatchDay(ctx context.Context, matchDayID int, date *time.Time) (*models.MatchDay, error)
	AssignMatchVenue(ctx context.Context, matchID, venueID int) error
}

type fixtureService struct {
	db               *sql.DB
	championshipRepo repositories.ChampionshipRepository
	matchDayRepo     repositories.MatchDayRepository
	matchRepo        repositories.MatchRepository
	resultRepo       repositories.ResultRepository
	venueRepo        repositories.VenueRepository
	teamRepo         repositories.TeamRepository
	hub              *league.Hub
	logger           *slog.Logger
}

func NewFixtureService(
	db *sql.DB,
	championshipRepo repositories.ChampionshipRepository,
	matchDayRepo repositories.MatchDayRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	venueRepo repositories.VenueRepository,
	teamRepo repositories.TeamRepository,
	hub *league.Hub,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		db:               db,
		championshipRepo: championshipRepo,
		matchDayRepo:     matchDayRepo,
		matchRepo:        matchRepo,
		resultRepo:       resultRepo,
		venueRepo:        venueRepo,
		teamRepo:         teamRepo,
		hub:              hub,
		logger:           logger,
	}
}

func (s *fixtureService) GenerateFixture(ctx context.Context, championshipID int) ([]*models.MatchDay, error) {
	championship, err := s.championshipRepo.GetByID(ctx, championshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}
	if championship.Status != models.ChampionshipPending {
		return nil, ErrChampionshipNotPending
	}

	existing, err := s.matchDayRepo.CountByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing fixture: %w", err)
	}
	if existing > 0 {
		return nil, ErrFixtureExists
	}

	teams, err := s.championshipRepo.ListEnrolledTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for championship %d: %w", championshipID, err)
	}
	if len(teams) < 2 {
		return nil, ErrRosterTooSmall
	}

	rounds, err := league.GenerateRoundRobin(teams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	venue, err := s.venueRepo.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, fmt.Errorf("%w: no active venue available for scheduling", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to pick default venue: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin fixture transaction: %w", err)
	}
	defer tx.Rollback()

	matchDays := make([]*models.MatchDay, 0, len(rounds))
	for _, round := range rounds {
		md := &models.MatchDay{
			ChampionshipID: championshipID,
			Number:         round.Number,
		}
		if championship.StartDate != nil {
			date := championship.StartDate.Add(time.Duration(round.Number-1) * matchDayInterval)
			md.Date = &date
		}
		if err := s.matchDayRepo.Create(ctx, tx, md); err != nil {
			if errors.Is(err, repositories.ErrMatchDayNumberConflict) {
				return nil, ErrFixtureExists
			}
			return nil, fmt.Errorf("failed to create match day %d: %w", round.Number, err)
		}

		md.Matches = make([]models.Match, 0, len(round.Pairings))
		for _, pairing := range round.Pairings {
			match := &models.Match{
				MatchDayID: md.ID,
				VenueID:    venue.ID,
				HomeTeamID: pairing.HomeTeamID,
				AwayTeamID: pairing.AwayTeamID,
			}
			if err := s.matchRepo.Create(ctx, tx, match); err != nil {
				return nil, fmt.Errorf("failed to create match %d vs %d: %w",
					pairing.HomeTeamID, pairing.AwayTeamID, err)
			}
			md.Matches = append(md.Matches, *match)
		}
		matchDays = append(matchDays, md)
	}

	if err := s.championshipRepo.UpdateStatus(ctx, tx, championshipID, models.ChampionshipInProgress); err != nil {
		return nil, fmt.Errorf("failed to mark championship %d in progress: %w", championshipID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixture: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture generated",
		slog.Int("championship_id", championshipID),
		slog.Int("teams", len(teams)),
		slog.Int("match_days", len(matchDays)),
	)

	if s.hub != nil {
		s.hub.BroadcastToRoom(fmt.Sprintf("championship_%d", championshipID), league.WebSocketMessage{
			Type:    league.MessageFixtureGenerated,
			Payload: map[string]interface{}{"championship_id": championshipID, "match_days": len(matchDays)},
		})
	}

	return matchDays, nil
}

// GetFixture loads the schedule with teams, venues and results attached. Match
// days, matches and lookup data load concurrently.
func (s *fixtureService) GetFixture(ctx context.Context, championshipID int) ([]*models.MatchDay, error) {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	var (
		matchDays []*models.MatchDay
		matches   []*models.Match
		teams     []models.Team
		venues    []*models.Venue
		results   []*models.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matchDays, err = s.matchDayRepo.ListByChampionship(gctx, championshipID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByChampionship(gctx, championshipID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.championshipRepo.ListEnrolledTeams(gctx, championshipID)
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = s.venueRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.resultRepo.ListByChampionship(gctx, championshipID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load fixture for championship %d: %w", championshipID, err)
	}

	teamsByID := make(map[int]*models.Team, len(teams))
	for i := range teams {
		teamsByID[teams[i].ID] = &teams[i]
	}
	venuesByID := make(map[int]*models.Venue, len(venues))
	for _, v := range venues {
		venuesByID[v.ID] = v
	}
	daysByID := make(map[int]*models.MatchDay, len(matchDays))
	for _, md := range matchDays {
		md.Matches = make([]models.Match, 0, 4)
		daysByID[md.ID] = md
	}
	resultsByID := make(map[int]*models.Result, len(results))
	for _, result := range results {
		resultsByID[result.ID] = result
	}

	for _, match := range matches {
		match.HomeTeam = teamsByID[match.HomeTeamID]
		match.AwayTeam = teamsByID[match.AwayTeamID]
		match.Venue = venuesByID[match.VenueID]
		if match.ResultID != nil {
			match.Result = resultsByID[*match.ResultID]
		}
		if md, ok := daysByID[match.MatchDayID]; ok {
			md.Matches = append(md.Matches, *match)
		}
	}

	return matchDays, nil
}

func (s *fixtureService) RescheduleMatchDay(ctx context.Context, matchDayID int, date *time.Time) (*models.MatchDay, error) {
	matchDay, err := s.matchDayRepo.GetByID(ctx, matchDayID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchDayNotFound) {
			return nil, ErrMatchDayNotFound
		}
		return nil, fmt.Errorf("failed to load match day %d: %w", matchDayID, err)
	}

	if err := s.matchDayRepo.UpdateDate(ctx, matchDayID, date); err != nil {
		return nil, fmt.Errorf("failed to reschedule match day %d: %w", matchDayID, err)
	}
	matchDay.Date = date
	return matchDay, nil
}

func (s *fixtureService) AssignMatchVenue(ctx context.Context, matchID, venueID int) error {
	err := s.matchRepo.UpdateVenue(ctx, matchID, venueID)
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchVenueInvalid):
		return ErrVenueNotFound
	case err != nil:
		return fmt.Errorf("failed to assign venue %d to match %d: %w", venueID, matchID, err)
	}
	return nil
}
