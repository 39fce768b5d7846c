package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrStandingNotFound = errors.New("standings row not found")
	ErrStandingConflict = errors.New("standings row already exists for this team")
)

type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, row *models.StandingsRow) error
	GetByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) (*models.StandingsRow, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.StandingsRow, error)
	Update(ctx context.Context, exec SQLExecutor, row *models.StandingsRow) error
	UpdatePositions(ctx context.Context, exec SQLExecutor, rows []*models.StandingsRow) error
	ResetByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) error
	DeleteByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const standingColumns = `id, championship_id, team_id, position, points, played, wins, draws, losses,
	goals_for, goals_against, goal_difference, updated_at`

func (r *postgresStandingRepository) scanStanding(row interface{ Scan(...interface{}) error }) (*models.StandingsRow, error) {
	var s models.StandingsRow
	err := row.Scan(
		&s.ID, &s.ChampionshipID, &s.TeamID, &s.Position, &s.Points, &s.Played,
		&s.Wins, &s.Draws, &s.Losses, &s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, row *models.StandingsRow) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings (
			championship_id, team_id, position, points, played, wins, draws, losses,
			goals_for, goals_against, goal_difference
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, updated_at`

	err := executor.QueryRowContext(ctx, query,
		row.ChampionshipID, row.TeamID, row.Position, row.Points, row.Played,
		row.Wins, row.Draws, row.Losses, row.GoalsFor, row.GoalsAgainst, row.GoalDifference,
	).Scan(&row.ID, &row.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrStandingConflict
	}
	return err
}

func (r *postgresStandingRepository) GetByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) (*models.StandingsRow, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + standingColumns + ` FROM standings WHERE championship_id = $1 AND team_id = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, championshipID, teamID))
}

// ListByChampionship returns the table ordered the way it is published:
// points, then goal difference, then goals scored, then stored position as
// the stable fallback.
func (r *postgresStandingRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.StandingsRow, error) {
	query := `SELECT ` + standingColumns + `
		FROM standings
		WHERE championship_id = $1
		ORDER BY points DESC, goal_difference DESC, goals_for DESC, position, id`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.StandingsRow, 0)
	for rows.Next() {
		s, scanErr := r.scanStanding(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) Update(ctx context.Context, exec SQLExecutor, row *models.StandingsRow) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings
		SET position = $1, points = $2, played = $3, wins = $4, draws = $5, losses = $6,
			goals_for = $7, goals_against = $8, goal_difference = $9, updated_at = NOW()
		WHERE id = $10`

	result, err := executor.ExecContext(ctx, query,
		row.Position, row.Points, row.Played, row.Wins, row.Draws, row.Losses,
		row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) UpdatePositions(ctx context.Context, exec SQLExecutor, rows []*models.StandingsRow) error {
	executor := r.getExecutor(exec)
	for _, row := range rows {
		result, err := executor.ExecContext(ctx,
			`UPDATE standings SET position = $1, updated_at = NOW() WHERE id = $2`,
			row.Position, row.ID)
		if err != nil {
			return err
		}
		if err := checkAffectedRows(result, ErrStandingNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresStandingRepository) ResetByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		UPDATE standings
		SET points = 0, played = 0, wins = 0, draws = 0, losses = 0,
			goals_for = 0, goals_against = 0, goal_difference = 0, updated_at = NOW()
		WHERE championship_id = $1`,
		championshipID)
	return err
}

func (r *postgresStandingRepository) DeleteByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM standings WHERE championship_id = $1 AND team_id = $2`,
		championshipID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}
