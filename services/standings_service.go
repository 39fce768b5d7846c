package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JDR69/DeporteDubss/league"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
)

const (
	AuditActionResultRecorded  = "result.recorded"
	AuditActionResultCorrected = "result.corrected"
)

type StandingsService interface {
	// RecordResult stores the first result of a match and applies it to both
	// teams' standings rows atomically.
	RecordResult(ctx context.Context, input RecordResultInput) (*models.Match, error)
	// CorrectResult replaces an existing result, reverting its previous effect
	// before applying the new score.
	CorrectResult(ctx context.Context, input RecordResultInput) (*models.Match, error)
	// RecomputeStandings rebuilds the whole table from the recorded results.
	RecomputeStandings(ctx context.Context, championshipID int) ([]*models.StandingsRow, error)
	GetStandings(ctx context.Context, championshipID int) ([]*models.StandingsRow, error)
}

type RecordResultInput struct {
	MatchID   int `json:"match_id"`
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
	ActorID   int `json:"-"`
}

type standingsService struct {
	db           *sql.DB
	standingRepo repositories.StandingRepository
	matchRepo    repositories.MatchRepository
	matchDayRepo repositories.MatchDayRepository
	resultRepo   repositories.ResultRepository
	auditRepo    repositories.AuditRepository
	hub          *league.Hub
	logger       *slog.Logger

	// One mutex per championship serializes standings mutations; concurrent
	// result submissions for different championships do not contend.
	locks   map[int]*sync.Mutex
	locksMu sync.Mutex
}

func NewStandingsService(
	db *sql.DB,
	standingRepo repositories.StandingRepository,
	matchRepo repositories.MatchRepository,
	matchDayRepo repositories.MatchDayRepository,
	resultRepo repositories.ResultRepository,
	auditRepo repositories.AuditRepository,
	hub *league.Hub,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		db:           db,
		standingRepo: standingRepo,
		matchRepo:    matchRepo,
		matchDayRepo: matchDayRepo,
		resultRepo:   resultRepo,
		auditRepo:    auditRepo,
		hub:          hub,
		logger:       logger,
		locks:        make(map[int]*sync.Mutex),
	}
}

func (s *standingsService) championshipLock(championshipID int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[championshipID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[championshipID] = lock
	}
	return lock
}

func (s *standingsService) RecordResult(ctx context.Context, input RecordResultInput) (*models.Match, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrNegativeGoals
	}

	match, championshipID, err := s.loadMatchWithChampionship(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	lock := s.championshipLock(championshipID)
	lock.Lock()
	defer lock.Unlock()

	// The first load only identified the championship to lock. A concurrent
	// submission may have attached a result in the meantime, so the match is
	// reloaded and validated under the lock.
	match, err = s.matchRepo.GetByID(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %d: %w", input.MatchID, err)
	}
	if match.Played() {
		return nil, ErrMatchAlreadyHasResult
	}

	rows, err := s.standingRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for championship %d: %w", championshipID, err)
	}
	home, away, err := findRows(rows, match.HomeTeamID, match.AwayTeamID)
	if err != nil {
		return nil, err
	}

	league.ApplyResult(home, away, input.HomeGoals, input.AwayGoals)
	ranked := league.Rank(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin result transaction: %w", err)
	}
	defer tx.Rollback()

	result := &models.Result{HomeGoals: input.HomeGoals, AwayGoals: input.AwayGoals}
	if err := s.resultRepo.Create(ctx, tx, result); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}
	if err := s.matchRepo.AttachResult(ctx, tx, match.ID, result.ID); err != nil {
		// Backstop for writers outside this process: the attach affects zero
		// rows when the match already carries a result.
		if errors.Is(err, repositories.ErrMatchAlreadyPlayed) {
			return nil, ErrMatchAlreadyHasResult
		}
		return nil, fmt.Errorf("failed to attach result to match %d: %w", match.ID, err)
	}
	if err := s.standingRepo.Update(ctx, tx, home); err != nil {
		return nil, fmt.Errorf("failed to update home standings row: %w", err)
	}
	if err := s.standingRepo.Update(ctx, tx, away); err != nil {
		return nil, fmt.Errorf("failed to update away standings row: %w", err)
	}
	if err := s.standingRepo.UpdatePositions(ctx, tx, ranked); err != nil {
		return nil, fmt.Errorf("failed to update positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result: %w", err)
	}

	match.ResultID = &result.ID
	match.Result = result

	s.logger.InfoContext(ctx, "result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("championship_id", championshipID),
		slog.Int("home_goals", input.HomeGoals),
		slog.Int("away_goals", input.AwayGoals),
	)
	s.recordAudit(ctx, input.ActorID, AuditActionResultRecorded,
		fmt.Sprintf("match %d: %d-%d", match.ID, input.HomeGoals, input.AwayGoals))
	s.broadcast(championshipID, league.MessageResultRecorded, match)
	s.broadcast(championshipID, league.MessageStandingsUpdated, ranked)

	return match, nil
}

func (s *standingsService) CorrectResult(ctx context.Context, input RecordResultInput) (*models.Match, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrNegativeGoals
	}

	match, championshipID, err := s.loadMatchWithChampionship(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	lock := s.championshipLock(championshipID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock: a concurrent correction may already have swapped
	// the result this call was about to revert.
	match, err = s.matchRepo.GetByID(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %d: %w", input.MatchID, err)
	}
	if !match.Played() {
		return nil, ErrMatchHasNoResult
	}

	previous, err := s.resultRepo.GetByID(ctx, *match.ResultID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous result for match %d: %w", match.ID, err)
	}

	rows, err := s.standingRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for championship %d: %w", championshipID, err)
	}
	home, away, err := findRows(rows, match.HomeTeamID, match.AwayTeamID)
	if err != nil {
		return nil, err
	}

	league.RevertResult(home, away, previous.HomeGoals, previous.AwayGoals)
	league.ApplyResult(home, away, input.HomeGoals, input.AwayGoals)
	ranked := league.Rank(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin correction transaction: %w", err)
	}
	defer tx.Rollback()

	// A correction never rewrites the old result row: a fresh row is created,
	// the match is pointed at it, and the superseded row is removed.
	replacement := &models.Result{HomeGoals: input.HomeGoals, AwayGoals: input.AwayGoals}
	if err := s.resultRepo.Create(ctx, tx, replacement); err != nil {
		return nil, fmt.Errorf("failed to store corrected result: %w", err)
	}
	if err := s.matchRepo.ReplaceResult(ctx, tx, match.ID, previous.ID, replacement.ID); err != nil {
		return nil, fmt.Errorf("failed to swap result on match %d: %w", match.ID, err)
	}
	if err := s.resultRepo.Delete(ctx, tx, previous.ID); err != nil {
		return nil, fmt.Errorf("failed to delete superseded result %d: %w", previous.ID, err)
	}
	if err := s.standingRepo.Update(ctx, tx, home); err != nil {
		return nil, fmt.Errorf("failed to update home standings row: %w", err)
	}
	if err := s.standingRepo.Update(ctx, tx, away); err != nil {
		return nil, fmt.Errorf("failed to update away standings row: %w", err)
	}
	if err := s.standingRepo.UpdatePositions(ctx, tx, ranked); err != nil {
		return nil, fmt.Errorf("failed to update positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit correction: %w", err)
	}

	match.ResultID = &replacement.ID
	match.Result = replacement

	s.logger.InfoContext(ctx, "result corrected",
		slog.Int("match_id", match.ID),
		slog.Int("championship_id", championshipID),
		slog.String("previous", fmt.Sprintf("%d-%d", previous.HomeGoals, previous.AwayGoals)),
		slog.String("corrected", fmt.Sprintf("%d-%d", input.HomeGoals, input.AwayGoals)),
	)
	s.recordAudit(ctx, input.ActorID, AuditActionResultCorrected,
		fmt.Sprintf("match %d: %d-%d -> %d-%d", match.ID,
			previous.HomeGoals, previous.AwayGoals, input.HomeGoals, input.AwayGoals))
	s.broadcast(championshipID, league.MessageResultRecorded, match)
	s.broadcast(championshipID, league.MessageStandingsUpdated, ranked)

	return match, nil
}

func (s *standingsService) RecomputeStandings(ctx context.Context, championshipID int) ([]*models.StandingsRow, error) {
	lock := s.championshipLock(championshipID)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.standingRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for championship %d: %w", championshipID, err)
	}
	if len(rows) == 0 {
		return nil, ErrChampionshipNotFound
	}

	byTeam := make(map[int]*models.StandingsRow, len(rows))
	for _, row := range rows {
		row.Points, row.Played = 0, 0
		row.Wins, row.Draws, row.Losses = 0, 0, 0
		row.GoalsFor, row.GoalsAgainst, row.GoalDifference = 0, 0, 0
		byTeam[row.TeamID] = row
	}

	matches, err := s.matchRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for championship %d: %w", championshipID, err)
	}
	results, err := s.resultRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for championship %d: %w", championshipID, err)
	}
	resultsByID := make(map[int]*models.Result, len(results))
	for _, result := range results {
		resultsByID[result.ID] = result
	}

	for _, match := range matches {
		if !match.Played() {
			continue
		}
		result, ok := resultsByID[*match.ResultID]
		if !ok {
			return nil, fmt.Errorf("match %d references missing result %d", match.ID, *match.ResultID)
		}
		home, away, err := findRows(rows, match.HomeTeamID, match.AwayTeamID)
		if err != nil {
			return nil, err
		}
		league.ApplyResult(home, away, result.HomeGoals, result.AwayGoals)
	}

	ranked := league.Rank(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin recompute transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range ranked {
		if err := s.standingRepo.Update(ctx, tx, row); err != nil {
			return nil, fmt.Errorf("failed to update standings row for team %d: %w", row.TeamID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recompute: %w", err)
	}

	s.logger.InfoContext(ctx, "standings recomputed",
		slog.Int("championship_id", championshipID),
		slog.Int("rows", len(ranked)),
	)
	s.broadcast(championshipID, league.MessageStandingsUpdated, ranked)

	return ranked, nil
}

func (s *standingsService) GetStandings(ctx context.Context, championshipID int) ([]*models.StandingsRow, error) {
	rows, err := s.standingRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for championship %d: %w", championshipID, err)
	}
	return rows, nil
}

func (s *standingsService) loadMatchWithChampionship(ctx context.Context, matchID int) (*models.Match, int, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, 0, ErrMatchNotFound
		}
		return nil, 0, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	matchDay, err := s.matchDayRepo.GetByID(ctx, match.MatchDayID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load match day %d: %w", match.MatchDayID, err)
	}
	return match, matchDay.ChampionshipID, nil
}

func (s *standingsService) broadcast(championshipID int, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(fmt.Sprintf("championship_%d", championshipID), league.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
	})
}

func (s *standingsService) recordAudit(ctx context.Context, actorID int, action, detail string) {
	if s.auditRepo == nil || actorID == 0 {
		return
	}
	_ = s.auditRepo.Create(ctx, &models.AuditEntry{UserID: actorID, Action: action, Detail: &detail})
}

func findRows(rows []*models.StandingsRow, homeTeamID, awayTeamID int) (home, away *models.StandingsRow, err error) {
	for _, row := range rows {
		switch row.TeamID {
		case homeTeamID:
			home = row
		case awayTeamID:
			away = row
		}
	}
	if home == nil || away == nil {
		return nil, nil, ErrStandingNotFound
	}
	return home, away, nil
}
