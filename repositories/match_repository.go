package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchSameTeam      = errors.New("match home and away team must differ")
	ErrMatchTeamInvalid   = errors.New("match team reference is invalid")
	ErrMatchVenueInvalid  = errors.New("match venue reference is invalid")
	ErrMatchAlreadyPlayed = errors.New("match already has a result")
	ErrMatchResultStale   = errors.New("match result reference changed")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByMatchDay(ctx context.Context, matchDayID int) ([]*models.Match, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
	FindByPairing(ctx context.Context, championshipID, homeTeamID, awayTeamID int) (*models.Match, error)
	AttachResult(ctx context.Context, exec SQLExecutor, matchID, resultID int) error
	ReplaceResult(ctx context.Context, exec SQLExecutor, matchID, oldResultID, newResultID int) error
	UpdateVenue(ctx context.Context, matchID, venueID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, match_day_id, venue_id, home_team_id, away_team_id, result_id`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.MatchDayID, &m.VenueID, &m.HomeTeamID, &m.AwayTeamID, &m.ResultID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if match.HomeTeamID == match.AwayTeamID {
		return ErrMatchSameTeam
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (match_day_id, venue_id, home_team_id, away_team_id, result_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.MatchDayID, match.VenueID, match.HomeTeamID, match.AwayTeamID, match.ResultID,
	).Scan(&match.ID)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByMatchDay(ctx context.Context, matchDayID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_day_id = $1 ORDER BY id`
	return r.listMatches(ctx, query, matchDayID)
}

// ListByChampionship returns every match of the championship in round order,
// which is the replay order for full standings recomputation.
func (r *postgresMatchRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.match_day_id, m.venue_id, m.home_team_id, m.away_team_id, m.result_id
		FROM matches m
		JOIN match_days md ON md.id = m.match_day_id
		WHERE md.championship_id = $1
		ORDER BY md.number, m.id`
	return r.listMatches(ctx, query, championshipID)
}

// FindByPairing looks up the scheduled match for an exact home/away pair.
// Callers reconciling external data try the reversed pair themselves when
// this returns ErrMatchNotFound.
func (r *postgresMatchRepository) FindByPairing(ctx context.Context, championshipID, homeTeamID, awayTeamID int) (*models.Match, error) {
	query := `
		SELECT m.id, m.match_day_id, m.venue_id, m.home_team_id, m.away_team_id, m.result_id
		FROM matches m
		JOIN match_days md ON md.id = m.match_day_id
		WHERE md.championship_id = $1 AND m.home_team_id = $2 AND m.away_team_id = $3`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, championshipID, homeTeamID, awayTeamID))
}

// AttachResult links the first result to a match. The result_id IS NULL guard
// makes the link append-once at the database level: a second attach affects
// zero rows no matter how the callers interleaved.
func (r *postgresMatchRepository) AttachResult(ctx context.Context, exec SQLExecutor, matchID, resultID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET result_id = $1 WHERE id = $2 AND result_id IS NULL`, resultID, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchAlreadyPlayed)
}

// ReplaceResult swaps the match's result reference from one result row to
// another. The old-id guard rejects the swap when the reference no longer
// points at the row the caller reverted.
func (r *postgresMatchRepository) ReplaceResult(ctx context.Context, exec SQLExecutor, matchID, oldResultID, newResultID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET result_id = $1 WHERE id = $2 AND result_id = $3`,
		newResultID, matchID, oldResultID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchResultStale)
}

func (r *postgresMatchRepository) UpdateVenue(ctx context.Context, matchID, venueID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET venue_id = $1 WHERE id = $2`, venueID, matchID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchVenueInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) listMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503":
			switch pqErr.Constraint {
			case "matches_venue_id_fkey":
				return ErrMatchVenueInvalid
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			}
		case "23514":
			if pqErr.Constraint == "chk_matches_distinct_teams" {
				return ErrMatchSameTeam
			}
		}
	}
	return err
}
