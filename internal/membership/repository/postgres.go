package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"mission-tracker/backend/internal/db"
	"mission-tracker/backend/internal/membership/domain"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
// Queries join an in-flight transaction when one is carried by the context.
func NewPostgresRepository(sqlDB *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: sqlDB}
}

func (r *PostgresRepository) q(ctx context.Context) db.DBTX {
	return db.Querier(ctx, r.db)
}

// EnsureRole returns the role named name in the given account, creating it if
// absent. Backed by UNIQUE(name, account_id): the insert is ON CONFLICT DO
// NOTHING, so two concurrent callers both end up reading the same row.
func (r *PostgresRepository) EnsureRole(ctx context.Context, accountID, name string) (*domain.Role, error) {
	q := r.q(ctx)
	_, err := q.ExecContext(ctx,
		`INSERT INTO roles (name, account_id)
		 VALUES ($1, $2)
		 ON CONFLICT (name, account_id) DO NOTHING`,
		name, accountID)
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx,
		`SELECT id, name, account_id, description, created_at
		 FROM roles WHERE name = $1 AND account_id = $2`,
		name, accountID)
	return scanRole(row)
}

// GetRoleByID returns the role for id, or nil if not found.
func (r *PostgresRepository) GetRoleByID(ctx context.Context, id string) (*domain.Role, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, name, account_id, description, created_at
		 FROM roles WHERE id = $1`, id)
	return scanRole(row)
}

// Create persists the membership. The partial unique index on
// (account_id, user_id) WHERE deleted_at IS NULL is the authoritative guard;
// a violation is translated to domain.ErrDuplicateMembership.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Membership) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO account_users (id, account_id, user_id, role_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		m.ID, m.AccountID, m.UserID, m.RoleID, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// GetActive returns the active membership for (account, user), or nil if none.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetActive(ctx context.Context, accountID, userID string) (*domain.Membership, error) {
	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT au.id, au.account_id, au.user_id, au.role_id, r.name, au.deleted_at, au.created_at
		 FROM account_users au
		 JOIN roles r ON r.id = au.role_id
		 WHERE au.account_id = $1 AND au.user_id = $2 AND au.deleted_at IS NULL`,
		accountID, userID)
	m, err := scanMembershipRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListForUser returns the user's active memberships ordered by creation time.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT au.id, au.account_id, au.user_id, au.role_id, r.name, au.deleted_at, au.created_at
		 FROM account_users au
		 JOIN roles r ON r.id = au.role_id
		 WHERE au.user_id = $1 AND au.deleted_at IS NULL
		 ORDER BY au.created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectMemberships(rows)
}

// ListByAccount returns the account's active memberships ordered by creation time.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Membership, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT au.id, au.account_id, au.user_id, au.role_id, r.name, au.deleted_at, au.created_at
		 FROM account_users au
		 JOIN roles r ON r.id = au.role_id
		 WHERE au.account_id = $1 AND au.deleted_at IS NULL
		 ORDER BY au.created_at`,
		accountID)
	if err != nil {
		return nil, err
	}
	return collectMemberships(rows)
}

// Deactivate sets the membership's deletion timestamp; the row is not removed.
func (r *PostgresRepository) Deactivate(ctx context.Context, membershipID string) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE account_users SET deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND deleted_at IS NULL`,
		membershipID, time.Now().UTC())
	return err
}

func scanRole(row *sql.Row) (*domain.Role, error) {
	var role domain.Role
	var desc sql.NullString
	err := row.Scan(&role.ID, &role.Name, &role.AccountID, &desc, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	role.Description = desc.String
	return &role, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembershipRow(row rowScanner) (*domain.Membership, error) {
	var m domain.Membership
	var deletedAt sql.NullTime
	if err := row.Scan(&m.ID, &m.AccountID, &m.UserID, &m.RoleID, &m.RoleName, &deletedAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		m.DeletedAt = &t
	}
	return &m, nil
}

func collectMemberships(rows *sql.Rows) ([]*domain.Membership, error) {
	defer rows.Close()
	var out []*domain.Membership
	for rows.Next() {
		m, err := scanMembershipRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
