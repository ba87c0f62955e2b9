package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/content-service/internal/domain"
)

// TokenCodec signs and verifies JWT tokens against a single shared secret.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source, used to pin expiry in tests.
func WithClock(now func() time.Time) CodecOption {
	return func(tc *TokenCodec) { tc.now = now }
}

// NewTokenCodec builds a codec. Access tokens are deliberately short-lived
// relative to refresh tokens; non-positive TTLs fall back to the standard
// 300s/3600s lifetimes.
func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration, opts ...CodecOption) *TokenCodec {
	if accessTTL <= 0 {
		accessTTL = 300 * time.Second
	}
	if refreshTTL <= 0 {
		refreshTTL = 3600 * time.Second
	}
	tc := &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// Claims describes the signed payload.
type Claims struct {
	Email  string           `json:"email"`
	UserID int64            `json:"sub"`
	Kind   domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Subject returns the identity reference embedded in the claims.
func (c *Claims) Subject() domain.TokenSubject {
	return domain.TokenSubject{Email: c.Email, UserID: c.UserID}
}

// Sign builds and signs a token for the subject. A refresh token gets the
// longer TTL.
func (tc *TokenCodec) Sign(subject domain.TokenSubject, refresh bool) (string, error) {
	kind := domain.KindAccess
	ttl := tc.accessTTL
	if refresh {
		kind = domain.KindRefresh
		ttl = tc.refreshTTL
	}

	issued := tc.now()
	claims := &Claims{
		Email:  subject.Email,
		UserID: subject.UserID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify validates the signature and expiry and returns the decoded claims.
// It does NOT check the token kind: every caller that needs a specific kind
// must check Claims.Kind or use VerifyKind.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(tc.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyKind verifies the token and additionally requires the decoded kind to
// match the expected one, failing with ErrWrongTokenKind otherwise.
func (tc *TokenCodec) VerifyKind(tokenStr string, kind domain.TokenKind) (*Claims, error) {
	claims, err := tc.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if kind != domain.KindAny && claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}
