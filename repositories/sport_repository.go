package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameConflict = errors.New("category name already exists")
	ErrSportNotFound        = errors.New("sport not found")
	ErrSportNameConflict    = errors.New("sport name already exists")
	ErrSportInUse           = errors.New("sport is referenced by championships")
)

type SportRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)

	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	List(ctx context.Context) ([]*models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name,
	).Scan(&category.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrCategoryNameConflict
	}
	return err
}

func (r *postgresSportRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		var c models.Category
		if scanErr := rows.Scan(&c.ID, &c.Name); scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sports (category_id, name) VALUES ($1, $2) RETURNING id`,
		sport.CategoryID, sport.Name,
	).Scan(&sport.ID)
	return r.handleSportError(err)
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	var s models.Sport
	err := r.db.QueryRowContext(ctx,
		`SELECT id, category_id, name FROM sports WHERE id = $1`, id,
	).Scan(&s.ID, &s.CategoryID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSportRepository) List(ctx context.Context) ([]*models.Sport, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, category_id, name FROM sports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]*models.Sport, 0)
	for rows.Next() {
		var s models.Sport
		if scanErr := rows.Scan(&s.ID, &s.CategoryID, &s.Name); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, &s)
	}
	return sports, rows.Err()
}

func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sports SET category_id = $1, name = $2 WHERE id = $3`,
		sport.CategoryID, sport.Name, sport.ID,
	)
	if err != nil {
		return r.handleSportError(err)
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sports WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrSportInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) handleSportError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrSportNameConflict
		case "23503":
			if pqErr.Constraint == "sports_category_id_fkey" {
				return ErrCategoryNotFound
			}
		}
	}
	return err
}
