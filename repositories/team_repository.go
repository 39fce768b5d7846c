package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrTeamDelegateInvalid = errors.New("team delegate reference is invalid")
	ErrTeamInUse           = errors.New("team cannot be deleted while referenced by matches or standings")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerConflict      = errors.New("user is already registered as a player")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, onlyActive bool) ([]*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error

	AddPlayer(ctx context.Context, player *models.Player) error
	RemovePlayer(ctx context.Context, userID int) error
	ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.DelegateID, &t.Name, &t.Active, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (delegate_id, name, active, logo_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.DelegateID, team.Name, team.Active, team.LogoKey,
	).Scan(&team.ID, &team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, delegate_id, name, active, logo_key, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT id, delegate_id, name, active, logo_key, created_at FROM teams WHERE name = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) List(ctx context.Context, onlyActive bool) ([]*models.Team, error) {
	query := `SELECT id, delegate_id, name, active, logo_key, created_at FROM teams`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET delegate_id = $1, name = $2, active = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, team.DelegateID, team.Name, team.Active, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AddPlayer(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (user_id, team_id, note) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, player.UserID, player.TeamID, player.Note)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrPlayerConflict
	}
	return err
}

func (r *postgresTeamRepository) RemovePlayer(ctx context.Context, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresTeamRepository) ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `SELECT user_id, team_id, note FROM players WHERE team_id = $1 ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.UserID, &p.TeamID, &p.Note); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, &p)
	}
	return players, rows.Err()
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			if pqErr.Constraint == "teams_delegate_id_fkey" {
				return ErrTeamDelegateInvalid
			}
		}
	}
	return err
}
