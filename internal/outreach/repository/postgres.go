package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mission-tracker/backend/internal/db"
	"mission-tracker/backend/internal/outreach/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

func NewPostgresRepository(sqlDB *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: sqlDB}
}

func (r *PostgresRepository) q(ctx context.Context) db.DBTX {
	return db.Querier(ctx, r.db)
}

const contactColumns = "id, account_id, mission_id, full_name, phone_number, status, created_by_user_id, created_at, updated_at"

func (r *PostgresRepository) CreateContact(ctx context.Context, c *domain.Contact) error {
	phone := sql.NullString{String: c.PhoneNumber, Valid: c.PhoneNumber != ""}
	status := sql.NullString{String: c.Status, Valid: c.Status != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO outreach_data (id, account_id, mission_id, full_name, phone_number, status, created_by_user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		c.ID, c.AccountID, c.MissionID, c.FullName, phone, status, c.CreatedBy, c.CreatedAt)
	return err
}

func (r *PostgresRepository) GetContact(ctx context.Context, accountID, id string) (*domain.Contact, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+contactColumns+`
		 FROM outreach_data
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		id, accountID)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ListContacts returns the account's contacts, optionally narrowed to one
// mission when missionID is non-empty.
func (r *PostgresRepository) ListContacts(ctx context.Context, accountID, missionID string) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		 FROM outreach_data
		 WHERE account_id = $1 AND deleted_at IS NULL`
	args := []any{accountID}
	if missionID != "" {
		query += ` AND mission_id = $2`
		args = append(args, missionID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateContact(ctx context.Context, c *domain.Contact) error {
	phone := sql.NullString{String: c.PhoneNumber, Valid: c.PhoneNumber != ""}
	status := sql.NullString{String: c.Status, Valid: c.Status != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE outreach_data
		 SET full_name = $3, phone_number = $4, status = $5, updated_at = $6
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		c.ID, c.AccountID, c.FullName, phone, status, c.UpdatedAt)
	return err
}

func (r *PostgresRepository) SoftDeleteContact(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE outreach_data SET deleted_at = $3, updated_at = $3
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		id, accountID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpsertNumbers relies on the unique index on mission_id: the first write
// inserts, later writes overwrite the counters in place.
func (r *PostgresRepository) UpsertNumbers(ctx context.Context, n *domain.Numbers) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO outreach_numbers (id, account_id, mission_id, interested, healed, saved, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 ON CONFLICT (mission_id) DO UPDATE
		 SET interested = EXCLUDED.interested,
		     healed = EXCLUDED.healed,
		     saved = EXCLUDED.saved,
		     updated_at = EXCLUDED.updated_at`,
		n.ID, n.AccountID, n.MissionID, n.Interested, n.Healed, n.Saved, n.CreatedAt)
	return err
}

func (r *PostgresRepository) GetNumbers(ctx context.Context, accountID, missionID string) (*domain.Numbers, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, account_id, mission_id, interested, healed, saved, created_at, updated_at
		 FROM outreach_numbers
		 WHERE mission_id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		missionID, accountID)
	var n domain.Numbers
	err := row.Scan(&n.ID, &n.AccountID, &n.MissionID, &n.Interested, &n.Healed, &n.Saved, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var phone, status sql.NullString
	err := row.Scan(&c.ID, &c.AccountID, &c.MissionID, &c.FullName, &phone, &status,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.PhoneNumber = phone.String
	c.Status = status.String
	return &c, nil
}
