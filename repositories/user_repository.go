package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("email is already in use")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role *models.UserRole) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, role, first_name, last_name, email, password_hash, birth_date, gender, active, created_at`

func (r *postgresUserRepository) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Role, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.BirthDate, &u.Gender, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (role, first_name, last_name, email, password_hash, birth_date, gender, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Role, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.BirthDate, user.Gender, user.Active,
	).Scan(&user.ID, &user.CreatedAt)

	return r.handleUserError(err)
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(row)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(row)
}

func (r *postgresUserRepository) List(ctx context.Context, role *models.UserRole) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, scanErr := r.scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET role = $1, first_name = $2, last_name = $3, email = $4,
		    password_hash = $5, birth_date = $6, gender = $7, active = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		user.Role, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.BirthDate, user.Gender, user.Active, user.ID,
	)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) handleUserError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
	}
	return err
}
