package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"mission-tracker/backend/internal/db"
	"mission-tracker/backend/internal/mission/domain"
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

const missionColumns = "id, account_id, name, start_date, end_date, location, budget, created_by, created_at, updated_at"

func (r *PostgresRepository) Create(ctx context.Context, m *domain.Mission) error {
	location, err := marshalLocation(m.Location)
	if err != nil {
		return err
	}
	_, err = r.q(ctx).ExecContext(ctx,
		`INSERT INTO missions (id, account_id, name, start_date, end_date, location, budget, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		m.ID, m.AccountID, m.Name, nullTime(m.StartDate), nullTime(m.EndDate),
		location, nullFloat(m.Budget), m.CreatedBy, m.CreatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Mission, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT `+missionColumns+`
		 FROM missions
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		id, accountID)
	return scanMission(row)
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Mission, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT `+missionColumns+`
		 FROM missions
		 WHERE account_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Mission
	for rows.Next() {
		m, err := scanMissionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, m *domain.Mission) error {
	location, err := marshalLocation(m.Location)
	if err != nil {
		return err
	}
	_, err = r.q(ctx).ExecContext(ctx,
		`UPDATE missions
		 SET name = $3, start_date = $4, end_date = $5, location = $6, budget = $7, updated_at = $8
		 WHERE id = $1 AND account_id = $2 AND deleted_at IS NULL`,
		m.ID, m.AccountID, m.Name, nullTime(m.StartDate), nullTime(m.EndDate),
		location, nullFloat(m.Budget), m.UpdatedAt)
	return err
}

// SoftDelete marks the mission deleted and reports whether a live row was
// affected.
func (r *PostgresRepository) SoftDelete(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE missions SET deleted_at = $3, updated_at = $3
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

func (r *PostgresRepository) Assign(ctx context.Context, a *domain.Assignment) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO mission_users (id, mission_id, user_id, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		a.ID, a.MissionID, a.UserID, a.Role, a.CreatedAt)
	return err
}

func (r *PostgresRepository) ListAssignments(ctx context.Context, missionID string) ([]*domain.Assignment, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, mission_id, user_id, role, created_at
		 FROM mission_users
		 WHERE mission_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at`,
		missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.MissionID, &a.UserID, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Unassign(ctx context.Context, missionID, userID string) (bool, error) {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE mission_users SET deleted_at = $3, updated_at = $3
		 WHERE mission_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		missionID, userID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func marshalLocation(location map[string]any) (any, error) {
	if location == nil {
		return nil, nil
	}
	b, err := json.Marshal(location)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(row *sql.Row) (*domain.Mission, error) {
	m, err := scanMissionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func scanMissionRow(row rowScanner) (*domain.Mission, error) {
	var m domain.Mission
	var start, end sql.NullTime
	var location []byte
	var budget sql.NullFloat64
	err := row.Scan(&m.ID, &m.AccountID, &m.Name, &start, &end, &location, &budget,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time
		m.StartDate = &t
	}
	if end.Valid {
		t := end.Time
		m.EndDate = &t
	}
	if budget.Valid {
		f := budget.Float64
		m.Budget = &f
	}
	if len(location) > 0 {
		if err := json.Unmarshal(location, &m.Location); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
