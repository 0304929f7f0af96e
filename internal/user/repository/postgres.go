package repository

import (
	"context"
	"database/sql"
	"errors"

	"mission-tracker/backend/internal/db"
	"mission-tracker/backend/internal/user/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
// Queries join an in-flight transaction when one is carried by the context.
func NewPostgresRepository(sqlDB *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: sqlDB}
}

func (r *PostgresRepository) q(ctx context.Context) db.DBTX {
	return db.Querier(ctx, r.db)
}

const userColumns = `id, full_name, email, phone_number, password_hash, is_active, created_at, updated_at`

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	phone := sql.NullString{String: u.PhoneNumber, Valid: u.PhoneNumber != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO users (id, full_name, email, phone_number, password_hash, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.FullName, u.Email, phone, u.PasswordHash, u.Active, u.CreatedAt, u.UpdatedAt)
	return err
}

// Update updates the existing user record in the database.
func (r *PostgresRepository) Update(ctx context.Context, u *domain.User) error {
	phone := sql.NullString{String: u.PhoneNumber, Valid: u.PhoneNumber != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE users
		 SET full_name = $2, email = $3, phone_number = $4, password_hash = $5, is_active = $6, updated_at = $7
		 WHERE id = $1`,
		u.ID, u.FullName, u.Email, phone, u.PasswordHash, u.Active, u.UpdatedAt)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var phone sql.NullString
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &phone, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.PhoneNumber = phone.String
	return &u, nil
}
