package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	accountdomain "mission-tracker/backend/internal/account/domain"
	accountrepo "mission-tracker/backend/internal/account/repository"
	"mission-tracker/backend/internal/logger"
	membershipdomain "mission-tracker/backend/internal/membership/domain"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	"mission-tracker/backend/internal/security"
	userdomain "mission-tracker/backend/internal/user/domain"
	userrepo "mission-tracker/backend/internal/user/repository"
)

var (
	// ErrEmailAlreadyRegistered is returned when registration targets an
	// email that already belongs to a user.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidEmail is returned when the email fails basic format checks.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword is returned when a password is shorter than the
	// minimum length or exceeds the bcrypt input limit.
	ErrWeakPassword = errors.New("password must be between 8 and 72 characters")
	// ErrFullNameRequired is returned when registration omits the full name.
	ErrFullNameRequired = errors.New("full name is required")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInactiveUser is returned when the user record exists but has been
	// deactivated.
	ErrInactiveUser = errors.New("user account is inactive")
	// ErrUserNotFound is returned when a token references a user that no
	// longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountAccessDenied is returned when the user has no active
	// membership in the requested account.
	ErrAccountAccessDenied = errors.New("no access to this account")
)

const minPasswordLen = 8

// maxPasswordBytes matches the bcrypt input limit enforced by the hasher.
const maxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Transactor runs a function inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	AccountName string
}

// LoginInput carries login credentials. AccountID is optional; when empty the
// user's oldest active membership selects the tenant.
type LoginInput struct {
	Email     string
	Password  string
	AccountID string
}

// AuthResult is returned by the operations that establish a session.
type AuthResult struct {
	User         userdomain.User
	AccountID    string
	RoleName     string
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, token refresh, and account
// switching on top of the user, account, and membership stores.
type AuthService struct {
	users       userrepo.Repository
	accounts    accountrepo.Repository
	memberships membershiprepo.Repository
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	tx          Transactor
}

// NewAuthService wires an AuthService from its dependencies.
func NewAuthService(
	users userrepo.Repository,
	accounts accountrepo.Repository,
	memberships membershiprepo.Repository,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	tx Transactor,
) *AuthService {
	return &AuthService{
		users:       users,
		accounts:    accounts,
		memberships: memberships,
		hasher:      hasher,
		tokens:      tokens,
		tx:          tx,
	}
}

// Register creates a user together with their first account, that account's
// admin role, and an active membership, all in one transaction. Either every
// row exists afterwards or none do. The caller is logged in immediately: the
// result carries a fresh token pair scoped to the new account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, ErrFullNameRequired
	}
	if len(in.Password) < minPasswordLen || len(in.Password) > maxPasswordBytes {
		return nil, ErrWeakPassword
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	accountName := strings.TrimSpace(in.AccountName)
	if accountName == "" {
		accountName = strings.TrimSpace(in.FullName)
	}

	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	account := &accountdomain.Account{
		ID:        uuid.NewString(),
		Name:      accountName,
		Email:     email,
		CreatedBy: user.ID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var role *membershipdomain.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return err
		}
		role, err = s.memberships.EnsureRole(ctx, account.ID, membershipdomain.RoleAdmin)
		if err != nil {
			return err
		}
		return s.memberships.Create(ctx, &membershipdomain.Membership{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			UserID:    user.ID,
			RoleID:    role.ID,
			RoleName:  role.Name,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID, "account_id", account.ID)
	return s.authResult(user, account.ID, role.Name)
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same error. When in.AccountID is set the user
// must hold an active membership there; otherwise the oldest active
// membership is used.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so a missing user costs the same as a
		// wrong password.
		_, _ = s.hasher.Compare("$2a$10$0000000000000000000000uGZv3WP5fCLarK6mQ1M4DyOFOrFYKq2", in.Password)
		return nil, ErrInvalidCredentials
	}
	ok, err := s.hasher.Compare(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInactiveUser
	}

	accountID, roleName, err := s.resolveAccount(ctx, user.ID, in.AccountID)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user logged in", "user_id", user.ID, "account_id", accountID)
	return s.authResult(user, accountID, roleName)
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token itself is not rotated and stays valid until it expires. The
// user and membership are re-checked so a deactivated user or a revoked
// membership cannot mint new access tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return "", err
	}
	if err := security.RequireKind(claims, security.TokenKindRefresh); err != nil {
		return "", err
	}
	user, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !user.Active {
		return "", ErrInactiveUser
	}
	m, err := s.memberships.GetActive(ctx, claims.AccountID, user.ID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", ErrAccountAccessDenied
	}
	return s.tokens.IssueAccess(user.ID, claims.AccountID, user.Email)
}

// SwitchAccount issues a fresh token pair scoped to another account the user
// is an active member of.
func (s *AuthService) SwitchAccount(ctx context.Context, userID, accountID string) (*AuthResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active {
		return nil, ErrInactiveUser
	}
	m, err := s.memberships.GetActive(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrAccountAccessDenied
	}
	return s.authResult(user, accountID, m.RoleName)
}

// Me returns the current user record.
func (s *AuthService) Me(ctx context.Context, userID string) (*userdomain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) resolveAccount(ctx context.Context, userID, requested string) (string, string, error) {
	if requested != "" {
		m, err := s.memberships.GetActive(ctx, requested, userID)
		if err != nil {
			return "", "", err
		}
		if m == nil {
			return "", "", ErrAccountAccessDenied
		}
		return m.AccountID, m.RoleName, nil
	}
	list, err := s.memberships.ListForUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if len(list) == 0 {
		return "", "", ErrAccountAccessDenied
	}
	return list[0].AccountID, list[0].RoleName, nil
}

func (s *AuthService) authResult(user *userdomain.User, accountID, roleName string) (*AuthResult, error) {
	access, refresh, err := s.tokens.IssuePair(user.ID, accountID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:         user.Sanitized(),
		AccountID:    accountID,
		RoleName:     roleName,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
