package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameConflict = errors.New("venue name already exists")
	ErrVenueInUse        = errors.New("venue is referenced by matches")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	GetDefault(ctx context.Context) (*models.Venue, error)
	List(ctx context.Context) ([]*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id int) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) scanVenue(row interface{ Scan(...interface{}) error }) (*models.Venue, error) {
	var v models.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Location, &v.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO venues (name, location, active) VALUES ($1, $2, $3) RETURNING id`,
		venue.Name, venue.Location, venue.Active,
	).Scan(&venue.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrVenueNameConflict
	}
	return err
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	return r.scanVenue(r.db.QueryRowContext(ctx,
		`SELECT id, name, location, active FROM venues WHERE id = $1`, id))
}

// GetDefault returns the first active venue; generated matches fall back to it
// when no venue was assigned explicitly.
func (r *postgresVenueRepository) GetDefault(ctx context.Context) (*models.Venue, error) {
	return r.scanVenue(r.db.QueryRowContext(ctx,
		`SELECT id, name, location, active FROM venues WHERE active ORDER BY id LIMIT 1`))
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]*models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, active FROM venues ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		v, scanErr := r.scanVenue(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE venues SET name = $1, location = $2, active = $3 WHERE id = $4`,
		venue.Name, venue.Location, venue.Active, venue.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrVenueNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrVenueInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}
