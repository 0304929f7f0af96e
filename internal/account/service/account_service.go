package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"mission-tracker/backend/internal/account/domain"
	accountrepo "mission-tracker/backend/internal/account/repository"
	authservice "mission-tracker/backend/internal/auth/service"
	"mission-tracker/backend/internal/logger"
	membershipdomain "mission-tracker/backend/internal/membership/domain"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	userrepo "mission-tracker/backend/internal/user/repository"
)

var (
	// ErrAccountNotFound is returned when the account does not exist or has
	// been deactivated.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNameRequired is returned when account creation omits a name.
	ErrAccountNameRequired = errors.New("account name is required")
	// ErrMembershipNotFound is returned when removal targets a user who is
	// not an active member.
	ErrMembershipNotFound = errors.New("membership not found")
)

// CreateInput carries the fields accepted when creating an account.
type CreateInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Location    string
}

// AccountWithRole pairs an account with the caller's role in it.
type AccountWithRole struct {
	Account domain.Account
	Role    string
}

// Member is one active membership in an account, joined with the user record.
type Member struct {
	UserID   string
	FullName string
	Email    string
	Role     string
	JoinedAt time.Time
}

// AccountService manages accounts and the memberships that link users to
// them. Every operation is scoped by explicit user and account IDs taken
// from the verified request identity, never from request bodies.
type AccountService struct {
	accounts    accountrepo.Repository
	users       userrepo.Repository
	memberships membershiprepo.Repository
	tx          authservice.Transactor
}

func NewAccountService(
	accounts accountrepo.Repository,
	users userrepo.Repository,
	memberships membershiprepo.Repository,
	tx authservice.Transactor,
) *AccountService {
	return &AccountService{accounts: accounts, users: users, memberships: memberships, tx: tx}
}

// Create creates an account with the caller as its admin. The account, its
// admin role, and the caller's membership are written in one transaction.
func (s *AccountService) Create(ctx context.Context, userID string, in CreateInput) (*AccountWithRole, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrAccountNameRequired
	}
	now := time.Now().UTC()
	account := &domain.Account{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Location:    strings.TrimSpace(in.Location),
		CreatedBy:   userID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.accounts.Create(ctx, account); err != nil {
			return err
		}
		role, err := s.memberships.EnsureRole(ctx, account.ID, membershipdomain.RoleAdmin)
		if err != nil {
			return err
		}
		return s.memberships.Create(ctx, &membershipdomain.Membership{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			UserID:    userID,
			RoleID:    role.ID,
			RoleName:  role.Name,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("account created", "account_id", account.ID, "created_by", userID)
	return &AccountWithRole{Account: *account, Role: membershipdomain.RoleAdmin}, nil
}

// ListForUser returns the caller's accounts with their role in each, oldest
// membership first.
func (s *AccountService) ListForUser(ctx context.Context, userID string) ([]AccountWithRole, error) {
	memberships, err := s.memberships.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AccountWithRole, 0, len(memberships))
	for _, m := range memberships {
		account, err := s.accounts.GetByID(ctx, m.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil || !account.Active {
			continue
		}
		out = append(out, AccountWithRole{Account: *account, Role: m.RoleName})
	}
	return out, nil
}

// Get returns an account the caller is an active member of.
func (s *AccountService) Get(ctx context.Context, accountID, userID string) (*AccountWithRole, error) {
	m, err := s.memberships.GetActive(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, authservice.ErrAccountAccessDenied
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, ErrAccountNotFound
	}
	return &AccountWithRole{Account: *account, Role: m.RoleName}, nil
}

// Join adds the caller to an existing account with the member role. A second
// join while the first membership is active fails with
// ErrDuplicateMembership; rejoining after removal creates a fresh row.
func (s *AccountService) Join(ctx context.Context, accountID, userID string) (*AccountWithRole, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, ErrAccountNotFound
	}
	var role *membershipdomain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		role, err = s.memberships.EnsureRole(ctx, accountID, membershipdomain.RoleMember)
		if err != nil {
			return err
		}
		return s.memberships.Create(ctx, &membershipdomain.Membership{
			ID:        uuid.NewString(),
			AccountID: accountID,
			UserID:    userID,
			RoleID:    role.ID,
			RoleName:  role.Name,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user joined account", "account_id", accountID, "user_id", userID)
	return &AccountWithRole{Account: *account, Role: role.Name}, nil
}

// Members lists the account's active members joined with their user records.
func (s *AccountService) Members(ctx context.Context, accountID string) ([]Member, error) {
	memberships, err := s.memberships.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		user, err := s.users.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		out = append(out, Member{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     m.RoleName,
			JoinedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// RemoveMember soft-deletes a user's membership. The row stays behind as
// history and the user may be re-added later.
func (s *AccountService) RemoveMember(ctx context.Context, accountID, userID string) error {
	m, err := s.memberships.GetActive(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMembershipNotFound
	}
	if err := s.memberships.Deactivate(ctx, m.ID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("membership revoked", "account_id", accountID, "user_id", userID)
	return nil
}
