package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JDR69/DeporteDubss/models"
)

type ListAuditFilter struct {
	UserID *int
	Action *string
	Limit  int
	Offset int
}

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, filter ListAuditFilter) ([]*models.AuditEntry, error)
}

type postgresAuditRepository struct {
	db *sql.DB
}

func NewPostgresAuditRepository(db *sql.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

func (r *postgresAuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (user_id, action, detail, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Action, entry.Detail, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *postgresAuditRepository) List(ctx context.Context, filter ListAuditFilter) ([]*models.AuditEntry, error) {
	query := `SELECT id, user_id, action, detail, ip_address, created_at FROM audit_entries WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argID)
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argID)
		args = append(args, *filter.Action)
		argID++
	}

	query += " ORDER BY created_at DESC, id DESC"
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

	entries := make([]*models.AuditEntry, 0)
	for rows.Next() {
		var e models.AuditEntry
		if scanErr := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Detail, &e.IPAddress, &e.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
