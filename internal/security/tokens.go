package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned when a token is malformed, carries a bad
	// signature, or is missing required claims.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when a token's signature verifies but its
	// expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenTypeMismatch is returned when a refresh token is presented
	// where an access token is required, or vice versa.
	ErrTokenTypeMismatch = errors.New("token type mismatch")
)

// TokenKind distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the JWT payload for both token kinds. The wire payload is exactly
// {sub, account_id, email, kind, iat, exp}.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Kind      TokenKind `json:"kind"`
}

// UserID returns the subject claim.
func (c *Claims) UserID() string { return c.Subject }

// TokenProvider issues and validates HS256-signed access and refresh tokens.
// Tokens embed the tenant account so requests carry tenant context without a
// database round trip; changing tenants requires re-issuance.
type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenProvider returns a TokenProvider signing with the given HMAC secret.
func NewTokenProvider(secret []byte, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccess issues a short-lived access token scoped to (user, account).
func (p *TokenProvider) IssueAccess(userID, accountID, email string) (string, error) {
	return p.issue(TokenKindAccess, userID, accountID, email, p.now().UTC())
}

// IssueRefresh issues a long-lived refresh token scoped to (user, account).
func (p *TokenProvider) IssueRefresh(userID, accountID, email string) (string, error) {
	return p.issue(TokenKindRefresh, userID, accountID, email, p.now().UTC())
}

// IssuePair issues an access and a refresh token from the same issuance
// instant. Both carry identical user/account/email; each gets its own TTL.
func (p *TokenProvider) IssuePair(userID, accountID, email string) (access, refresh string, err error) {
	now := p.now().UTC()
	access, err = p.issue(TokenKindAccess, userID, accountID, email, now)
	if err != nil {
		return "", "", err
	}
	refresh, err = p.issue(TokenKindRefresh, userID, accountID, email, now)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (p *TokenProvider) issue(kind TokenKind, userID, accountID, email string, now time.Time) (string, error) {
	ttl := p.accessTTL
	if kind == TokenKindRefresh {
		ttl = p.refreshTTL
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		Email:     email,
		Kind:      kind,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// Decode verifies signature and expiry and returns the claims.
// Returns ErrTokenExpired when the signature verifies but the token has
// expired, and ErrTokenInvalid for a bad signature, malformed payload, or
// missing required claims. Claims are never returned for a token whose
// signature does not verify.
func (p *TokenProvider) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return p.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Kind == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// RequireKind fails with ErrTokenTypeMismatch unless the claims carry the
// expected kind. Mandatory at every token use site so a refresh token can
// never be replayed as an access token, and vice versa.
func RequireKind(claims *Claims, expected TokenKind) error {
	if claims == nil || claims.Kind != expected {
		return ErrTokenTypeMismatch
	}
	return nil
}
