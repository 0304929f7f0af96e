package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenProvider_AccessRoundTrip(t *testing.T) {
	p := NewTestTokenProvider()

	token, err := p.IssueAccess("user-1", "acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	claims, err := p.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Errorf("sub = %q, want %q", claims.UserID(), "user-1")
	}
	if claims.AccountID != "acct-1" {
		t.Errorf("account_id = %q, want %q", claims.AccountID, "acct-1")
	}
	if claims.Email != "jane@x.com" {
		t.Errorf("email = %q, want %q", claims.Email, "jane@x.com")
	}
	if claims.Kind != TokenKindAccess {
		t.Errorf("kind = %q, want access", claims.Kind)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Errorf("exp - iat = %v, want access TTL 15m", got)
	}
}

func TestTokenProvider_IssuePair(t *testing.T) {
	p := NewTestTokenProvider()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	access, refresh, err := p.IssuePair("user-1", "acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	p.now = func() time.Time { return fixed.Add(time.Second) }

	ac, err := p.Decode(access)
	if err != nil {
		t.Fatalf("Decode access: %v", err)
	}
	rc, err := p.Decode(refresh)
	if err != nil {
		t.Fatalf("Decode refresh: %v", err)
	}
	if ac.Kind != TokenKindAccess || rc.Kind != TokenKindRefresh {
		t.Errorf("kinds = %q/%q, want access/refresh", ac.Kind, rc.Kind)
	}
	if ac.UserID() != rc.UserID() || ac.AccountID != rc.AccountID || ac.Email != rc.Email {
		t.Error("pair should carry identical user/account/email")
	}
	if !ac.IssuedAt.Time.Equal(rc.IssuedAt.Time) {
		t.Error("pair should share one issuance instant")
	}
	if got := rc.ExpiresAt.Sub(rc.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("refresh exp - iat = %v, want refresh TTL 24h", got)
	}
}

func TestTokenProvider_Expiry(t *testing.T) {
	p := NewTestTokenProvider()
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return issued }

	token, err := p.IssueAccess("user-1", "acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	// One second before expiry still decodes.
	p.now = func() time.Time { return issued.Add(15*time.Minute - time.Second) }
	if _, err := p.Decode(token); err != nil {
		t.Errorf("decode before expiry: %v", err)
	}

	// At/after expiry fails with ErrTokenExpired.
	p.now = func() time.Time { return issued.Add(15*time.Minute + time.Second) }
	if _, err := p.Decode(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("decode after expiry: want ErrTokenExpired, got %v", err)
	}
}

func TestTokenProvider_BadSignature(t *testing.T) {
	p := NewTestTokenProvider()
	other := NewTokenProvider([]byte("a-different-secret"), 15*time.Minute, 24*time.Hour)

	token, err := other.IssueAccess("user-1", "acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := p.Decode(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("foreign signature: want ErrTokenInvalid, got %v", err)
	}
}

func TestTokenProvider_Malformed(t *testing.T) {
	p := NewTestTokenProvider()

	for _, token := range []string{"", "garbage", "a.b.c", "a.b"} {
		if _, err := p.Decode(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Decode(%q): want ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestRequireKind(t *testing.T) {
	p := NewTestTokenProvider()

	access, refresh, err := p.IssuePair("user-1", "acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	ac, err := p.Decode(access)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rc, err := p.Decode(refresh)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if err := RequireKind(ac, TokenKindAccess); err != nil {
		t.Errorf("access as access: %v", err)
	}
	if err := RequireKind(rc, TokenKindRefresh); err != nil {
		t.Errorf("refresh as refresh: %v", err)
	}
	if err := RequireKind(ac, TokenKindRefresh); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("access as refresh: want ErrTokenTypeMismatch, got %v", err)
	}
	if err := RequireKind(rc, TokenKindAccess); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("refresh as access: want ErrTokenTypeMismatch, got %v", err)
	}
	if err := RequireKind(nil, TokenKindAccess); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("nil claims: want ErrTokenTypeMismatch, got %v", err)
	}
}
