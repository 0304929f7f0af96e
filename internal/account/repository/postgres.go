package repository

import (
	"context"
	"database/sql"
	"errors"

	"mission-tracker/backend/internal/account/domain"
	"mission-tracker/backend/internal/db"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns an account repository that uses the given db for persistence.
func NewPostgresRepository(sqlDB *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: sqlDB}
}

func (r *PostgresRepository) q(ctx context.Context) db.DBTX {
	return db.Querier(ctx, r.db)
}

const accountColumns = `id, account_name, email, phone_number, location, created_by, is_active, created_at, updated_at`

// GetByID returns the account for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// Create persists the account to the database. The account must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	email := sql.NullString{String: a.Email, Valid: a.Email != ""}
	phone := sql.NullString{String: a.PhoneNumber, Valid: a.PhoneNumber != ""}
	location := sql.NullString{String: a.Location, Valid: a.Location != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO accounts (id, account_name, email, phone_number, location, created_by, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Name, email, phone, location, a.CreatedBy, a.Active, a.CreatedAt, a.UpdatedAt)
	return err
}

// Update updates the existing account record in the database.
func (r *PostgresRepository) Update(ctx context.Context, a *domain.Account) error {
	email := sql.NullString{String: a.Email, Valid: a.Email != ""}
	phone := sql.NullString{String: a.PhoneNumber, Valid: a.PhoneNumber != ""}
	location := sql.NullString{String: a.Location, Valid: a.Location != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE accounts
		 SET account_name = $2, email = $3, phone_number = $4, location = $5, is_active = $6, updated_at = $7
		 WHERE id = $1`,
		a.ID, a.Name, email, phone, location, a.Active, a.UpdatedAt)
	return err
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	var email, phone, location sql.NullString
	err := row.Scan(&a.ID, &a.Name, &email, &phone, &location, &a.CreatedBy, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Email = email.String
	a.PhoneNumber = phone.String
	a.Location = location.String
	return &a, nil
}
