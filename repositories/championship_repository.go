package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrChampionshipNotFound         = errors.New("championship not found")
	ErrChampionshipNameConflict     = errors.New("championship name conflict for this organizer")
	ErrChampionshipInvalidSport     = errors.New("invalid sport reference")
	ErrChampionshipInvalidOrganizer = errors.New("invalid organizer reference")
	ErrEnrollmentConflict           = errors.New("team is already enrolled in this championship")
)

type ListChampionshipsFilter struct {
	OrganizerID *int
	SportID     *int
	Status      *models.ChampionshipStatus
	Limit       int
	Offset      int
}

type ChampionshipRepository interface {
	Create(ctx context.Context, championship *models.Championship) error
	GetByID(ctx context.Context, id int) (*models.Championship, error)
	GetByName(ctx context.Context, name string) (*models.Championship, error)
	List(ctx context.Context, filter ListChampionshipsFilter) ([]models.Championship, error)
	Update(ctx context.Context, championship *models.Championship) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ChampionshipStatus) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error

	EnrollTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
	WithdrawTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
	ListEnrolledTeams(ctx context.Context, championshipID int) ([]models.Team, error)
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const championshipColumns = `id, organizer_id, sport_id, name, start_date, end_date, status, logo_key, created_at`

func (r *postgresChampionshipRepository) scanChampionship(row interface{ Scan(...interface{}) error }) (*models.Championship, error) {
	var c models.Championship
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.SportID, &c.Name, &c.StartDate, &c.EndDate,
		&c.Status, &c.LogoKey, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresChampionshipRepository) Create(ctx context.Context, c *models.Championship) error {
	query := `
		INSERT INTO championships (organizer_id, sport_id, name, start_date, end_date, status, logo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.OrganizerID, c.SportID, c.Name, c.StartDate, c.EndDate, c.Status, c.LogoKey,
	).Scan(&c.ID, &c.CreatedAt)

	return r.handleChampionshipError(err)
}

func (r *postgresChampionshipRepository) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	query := `SELECT ` + championshipColumns + ` FROM championships WHERE id = $1`
	return r.scanChampionship(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresChampionshipRepository) GetByName(ctx context.Context, name string) (*models.Championship, error) {
	query := `SELECT ` + championshipColumns + ` FROM championships WHERE name = $1`
	return r.scanChampionship(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresChampionshipRepository) List(ctx context.Context, filter ListChampionshipsFilter) ([]models.Championship, error) {
	query := `SELECT ` + championshipColumns + ` FROM championships WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.OrganizerID != nil {
		query += fmt.Sprintf(" AND organizer_id = $%d", argID)
		args = append(args, *filter.OrganizerID)
		argID++
	}
	if filter.SportID != nil {
		query += fmt.Sprintf(" AND sport_id = $%d", argID)
		args = append(args, *filter.SportID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY start_date DESC NULLS LAST, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	championships := make([]models.Championship, 0)
	for rows.Next() {
		c, scanErr := r.scanChampionship(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		championships = append(championships, *c)
	}
	return championships, rows.Err()
}

func (r *postgresChampionshipRepository) Update(ctx context.Context, c *models.Championship) error {
	query := `
		UPDATE championships
		SET organizer_id = $1, sport_id = $2, name = $3, start_date = $4, end_date = $5, status = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		c.OrganizerID, c.SportID, c.Name, c.StartDate, c.EndDate, c.Status, c.ID,
	)
	if err != nil {
		return r.handleChampionshipError(err)
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ChampionshipStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE championships SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE championships SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) Delete(ctx context.Context, id int) error {
	// Match days, matches and standings cascade in the schema.
	result, err := r.db.ExecContext(ctx, `DELETE FROM championships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) EnrollTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`INSERT INTO championship_teams (championship_id, team_id) VALUES ($1, $2)`,
		championshipID, teamID)
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrEnrollmentConflict
		case "23503":
			if pqErr.Constraint == "championship_teams_team_id_fkey" {
				return ErrTeamNotFound
			}
			return ErrChampionshipNotFound
		}
	}
	return err
}

func (r *postgresChampionshipRepository) WithdrawTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM championship_teams WHERE championship_id = $1 AND team_id = $2`,
		championshipID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// ListEnrolledTeams returns the roster in enrollment order; fixture
// generation depends on this order being stable.
func (r *postgresChampionshipRepository) ListEnrolledTeams(ctx context.Context, championshipID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.delegate_id, t.name, t.active, t.logo_key, t.created_at
		FROM championship_teams ct
		JOIN teams t ON t.id = ct.team_id
		WHERE ct.championship_id = $1
		ORDER BY ct.id`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.DelegateID, &t.Name, &t.Active, &t.LogoKey, &t.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresChampionshipRepository) handleChampionshipError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrChampionshipNameConflict
		case "23503":
			switch pqErr.Constraint {
			case "championships_sport_id_fkey":
				return ErrChampionshipInvalidSport
			case "championships_organizer_id_fkey":
				return ErrChampionshipInvalidOrganizer
			}
		}
	}
	return err
}
