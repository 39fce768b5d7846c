package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
)

var ErrResultNotFound = errors.New("result not found")

type ResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.Result) error
	GetByID(ctx context.Context, id int) (*models.Result, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Result, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	executor := r.getExecutor(exec)
	return executor.QueryRowContext(ctx,
		`INSERT INTO results (home_goals, away_goals) VALUES ($1, $2) RETURNING id, recorded_at`,
		result.HomeGoals, result.AwayGoals,
	).Scan(&result.ID, &result.RecordedAt)
}

func (r *postgresResultRepository) GetByID(ctx context.Context, id int) (*models.Result, error) {
	var res models.Result
	err := r.db.QueryRowContext(ctx,
		`SELECT id, home_goals, away_goals, recorded_at FROM results WHERE id = $1`, id,
	).Scan(&res.ID, &res.HomeGoals, &res.AwayGoals, &res.RecordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByChampionship returns every result attached to a match of the
// championship in one query.
func (r *postgresResultRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Result, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.home_goals, r.away_goals, r.recorded_at
		FROM results r
		JOIN matches m ON m.result_id = r.id
		JOIN match_days md ON md.id = m.match_day_id
		WHERE md.championship_id = $1
		ORDER BY r.id`, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*models.Result, 0)
	for rows.Next() {
		var res models.Result
		if err := rows.Scan(&res.ID, &res.HomeGoals, &res.AwayGoals, &res.RecordedAt); err != nil {
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}

func (r *postgresResultRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	res, err := executor.ExecContext(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrResultNotFound)
}
