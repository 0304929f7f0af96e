package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	membershipdomain "mission-tracker/backend/internal/membership/domain"
	"mission-tracker/backend/internal/security"
	userdomain "mission-tracker/backend/internal/user/domain"
)

type stubUsers struct {
	user *userdomain.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*userdomain.User, error) {
	if s.user != nil && s.user.ID == id {
		cp := *s.user
		return &cp, nil
	}
	return nil, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, _ string) (*userdomain.User, error) {
	return nil, nil
}

func (s *stubUsers) Create(_ context.Context, _ *userdomain.User) error { return nil }

func (s *stubUsers) Update(_ context.Context, _ *userdomain.User) error { return nil }

type stubMemberships struct {
	membership *membershipdomain.Membership
}

func (s *stubMemberships) EnsureRole(_ context.Context, _, _ string) (*membershipdomain.Role, error) {
	return nil, nil
}

func (s *stubMemberships) GetRoleByID(_ context.Context, _ string) (*membershipdomain.Role, error) {
	return nil, nil
}

func (s *stubMemberships) Create(_ context.Context, _ *membershipdomain.Membership) error {
	return nil
}

func (s *stubMemberships) GetActive(_ context.Context, accountID, userID string) (*membershipdomain.Membership, error) {
	if s.membership != nil && s.membership.AccountID == accountID && s.membership.UserID == userID {
		cp := *s.membership
		return &cp, nil
	}
	return nil, nil
}

func (s *stubMemberships) ListForUser(_ context.Context, _ string) ([]*membershipdomain.Membership, error) {
	return nil, nil
}

func (s *stubMemberships) ListByAccount(_ context.Context, _ string) ([]*membershipdomain.Membership, error) {
	return nil, nil
}

func (s *stubMemberships) Deactivate(_ context.Context, _ string) error { return nil }

type authFixture struct {
	tokens      *security.TokenProvider
	users       *stubUsers
	memberships *stubMemberships
	router      *gin.Engine
	identity    *Identity
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &authFixture{
		tokens: security.NewTestTokenProvider(),
		users: &stubUsers{user: &userdomain.User{
			ID:     "user-1",
			Email:  "ada@example.com",
			Active: true,
		}},
		memberships: &stubMemberships{membership: &membershipdomain.Membership{
			ID:        "m-1",
			AccountID: "acct-1",
			UserID:    "user-1",
			RoleID:    "role-1",
			RoleName:  membershipdomain.RoleAdmin,
			CreatedAt: time.Now().UTC(),
		}},
	}

	r := gin.New()
	r.Use(Auth(f.tokens, f.users, f.memberships))
	r.GET("/protected", func(c *gin.Context) {
		id := MustIdentity(c)
		f.identity = &id
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	f.router = r
	return f
}

func (f *authFixture) request(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.tokens.IssueAccess("user-1", "acct-1", "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	w := f.request(t, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if f.identity == nil {
		t.Fatal("identity not set")
	}
	if f.identity.UserID != "user-1" || f.identity.AccountID != "acct-1" || f.identity.RoleName != membershipdomain.RoleAdmin {
		t.Errorf("identity = %+v", f.identity)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	f := newAuthFixture(t)
	if w := f.request(t, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := f.request(t, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer status = %d, want 401", w.Code)
	}
	if w := f.request(t, "Bearer "); w.Code != http.StatusUnauthorized {
		t.Errorf("empty token status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.tokens.IssueRefresh("user-1", "acct-1", "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if w := f.request(t, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	if w := f.request(t, "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsInactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user.Active = false
	token, err := f.tokens.IssueAccess("user-1", "acct-1", "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if w := f.request(t, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.user = nil
	token, err := f.tokens.IssueAccess("user-1", "acct-1", "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if w := f.request(t, "Bearer "+token); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAuthRejectsRevokedMembership(t *testing.T) {
	f := newAuthFixture(t)
	f.memberships.membership = nil
	token, err := f.tokens.IssueAccess("user-1", "acct-1", "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if w := f.request(t, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
