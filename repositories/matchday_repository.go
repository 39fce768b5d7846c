package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrMatchDayNotFound       = errors.New("match day not found")
	ErrMatchDayNumberConflict = errors.New("match day number already exists for this championship")
)

type MatchDayRepository interface {
	Create(ctx context.Context, exec SQLExecutor, matchDay *models.MatchDay) error
	GetByID(ctx context.Context, id int) (*models.MatchDay, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.MatchDay, error)
	CountByChampionship(ctx context.Context, championshipID int) (int, error)
	UpdateDate(ctx context.Context, id int, date *time.Time) error
	DeleteByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) error
}

type postgresMatchDayRepository struct {
	db *sql.DB
}

func NewPostgresMatchDayRepository(db *sql.DB) MatchDayRepository {
	return &postgresMatchDayRepository{db: db}
}

func (r *postgresMatchDayRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchDayRepository) Create(ctx context.Context, exec SQLExecutor, md *models.MatchDay) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_days (championship_id, number, date)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query, md.ChampionshipID, md.Number, md.Date).Scan(&md.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrMatchDayNumberConflict
	}
	return err
}

func (r *postgresMatchDayRepository) GetByID(ctx context.Context, id int) (*models.MatchDay, error) {
	var md models.MatchDay
	err := r.db.QueryRowContext(ctx,
		`SELECT id, championship_id, number, date FROM match_days WHERE id = $1`, id,
	).Scan(&md.ID, &md.ChampionshipID, &md.Number, &md.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchDayNotFound
		}
		return nil, err
	}
	return &md, nil
}

func (r *postgresMatchDayRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.MatchDay, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, championship_id, number, date FROM match_days WHERE championship_id = $1 ORDER BY number`,
		championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matchDays := make([]*models.MatchDay, 0)
	for rows.Next() {
		var md models.MatchDay
		if scanErr := rows.Scan(&md.ID, &md.ChampionshipID, &md.Number, &md.Date); scanErr != nil {
			return nil, scanErr
		}
		matchDays = append(matchDays, &md)
	}
	return matchDays, rows.Err()
}

func (r *postgresMatchDayRepository) CountByChampionship(ctx context.Context, championshipID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM match_days WHERE championship_id = $1`, championshipID,
	).Scan(&count)
	return count, err
}

func (r *postgresMatchDayRepository) UpdateDate(ctx context.Context, id int, date *time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE match_days SET date = $1 WHERE id = $2`, date, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchDayNotFound)
}

func (r *postgresMatchDayRepository) DeleteByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM match_days WHERE championship_id = $1`, championshipID)
	return err
}
