package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mission-tracker/backend/internal/db"
	"mission-tracker/backend/internal/expense/domain"
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

const expenseColumns = "id, account_id, mission_id, user_id, category, amount, description, created_at, updated_at"

func (r *PostgresRepository) Create(ctx context.Context, e *domain.Expense) error {
	desc := sql.NullString{String: e.Description, Valid: e.Description != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO expenses (id, account_id, mission_id, user_id, category, amount, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		e.ID, e.AccountID, nullString(e.MissionID), e.UserID, e.Category, e.Amount, desc, e.CreatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Expense, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		id, accountID)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, accountID, missionID string) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + `
		 FROM expenses
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
	var out []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, e *domain.Expense) error {
	desc := sql.NullString{String: e.Description, Valid: e.Description != ""}
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE expenses
		 SET mission_id = $3, category = $4, amount = $5, description = $6, updated_at = $7
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		e.ID, e.AccountID, nullString(e.MissionID), e.Category, e.Amount, desc, e.UpdatedAt)
	return err
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE expenses SET deleted_at = $3, updated_at = $3
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

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var missionID, desc sql.NullString
	err := row.Scan(&e.ID, &e.AccountID, &missionID, &e.UserID, &e.Category, &e.Amount,
		&desc, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if missionID.Valid {
		s := missionID.String
		e.MissionID = &s
	}
	e.Description = desc.String
	return &e, nil
}
