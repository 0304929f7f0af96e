package repository

import (
	"context"
	"database/sql"

	"mission-tracker/backend/internal/db"
)

// Summary is the per-account aggregate view backing the dashboard.
type Summary struct {
	MissionCount    int
	MemberCount     int
	ExpenseTotal    float64
	ContactCount    int
	TotalInterested int
	TotalHealed     int
	TotalSaved      int
}

// Repository computes dashboard aggregates.
type Repository interface {
	Summary(ctx context.Context, accountID string) (*Summary, error)
}

type PostgresRepository struct {
	db db.DBTX
}

func NewPostgresRepository(sqlDB *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: sqlDB}
}

// Summary gathers every aggregate in one round trip. Soft-deleted rows are
// excluded everywhere.
func (r *PostgresRepository) Summary(ctx context.Context, accountID string) (*Summary, error) {
	q := db.Querier(ctx, r.db)
	row := q.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM missions WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COUNT(*) FROM account_users WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COUNT(*) FROM outreach_data WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COALESCE(SUM(interested), 0) FROM outreach_numbers WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COALESCE(SUM(healed), 0) FROM outreach_numbers WHERE account_id = $1 AND deleted_at IS NULL),
		   (SELECT COALESCE(SUM(saved), 0) FROM outreach_numbers WHERE account_id = $1 AND deleted_at IS NULL)`,
		accountID)
	var s Summary
	err := row.Scan(&s.MissionCount, &s.MemberCount, &s.ExpenseTotal, &s.ContactCount,
		&s.TotalInterested, &s.TotalHealed, &s.TotalSaved)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
