package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrIncidentNotFound     = errors.New("incident not found")
	ErrIncidentMatchInvalid = errors.New("incident match reference is invalid")
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id int) (*models.Incident, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Incident, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Incident, error)
	Delete(ctx context.Context, id int) error
}

type postgresIncidentRepository struct {
	db *sql.DB
}

func NewPostgresIncidentRepository(db *sql.DB) IncidentRepository {
	return &postgresIncidentRepository{db: db}
}

const incidentColumns = `id, match_id, team_id, player_id, kind, minute, description, created_at`

func (r *postgresIncidentRepository) scanIncident(row interface{ Scan(...interface{}) error }) (*models.Incident, error) {
	var in models.Incident
	err := row.Scan(&in.ID, &in.MatchID, &in.TeamID, &in.PlayerID, &in.Kind, &in.Minute, &in.Description, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return &in, nil
}

func (r *postgresIncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (match_id, team_id, player_id, kind, minute, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		incident.MatchID, incident.TeamID, incident.PlayerID,
		incident.Kind, incident.Minute, incident.Description,
	).Scan(&incident.ID, &incident.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrIncidentMatchInvalid
	}
	return err
}

func (r *postgresIncidentRepository) GetByID(ctx context.Context, id int) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	return r.scanIncident(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresIncidentRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE match_id = $1 ORDER BY minute NULLS LAST, id`
	return r.listIncidents(ctx, query, matchID)
}

func (r *postgresIncidentRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Incident, error) {
	query := `
		SELECT i.id, i.match_id, i.team_id, i.player_id, i.kind, i.minute, i.description, i.created_at
		FROM incidents i
		JOIN matches m ON m.id = i.match_id
		JOIN match_days md ON md.id = m.match_day_id
		WHERE md.championship_id = $1
		ORDER BY md.number, i.match_id, i.minute NULLS LAST, i.id`
	return r.listIncidents(ctx, query, championshipID)
}

func (r *postgresIncidentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrIncidentNotFound)
}

func (r *postgresIncidentRepository) listIncidents(ctx context.Context, query string, args ...interface{}) ([]*models.Incident, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		in, scanErr := r.scanIncident(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		incidents = append(incidents, in)
	}
	return incidents, rows.Err()
}
