package security

import (
	"errors"
	"time"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token is malformed, badly signed or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySecret is returned when a TokenService is built without a signing secret.
	ErrEmptySecret = errors.New("token signing secret is empty")
)

// DefaultTokenTTL is the session token lifetime.
const DefaultTokenTTL = 12 * time.Hour

// SessionClaims holds the JWT claims of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

// TokenService issues and verifies HS256 session tokens. Verified claims are
// trusted as-is; no lookup against the user store is made, so a deleted user's
// token stays valid until it expires.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret []byte, issuer string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for p. Returns the token and its expiry.
func (s *TokenService) Issue(p domain.Principal) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   p.UserID.String(),
		TenantID: p.TenantID.String(),
		Role:     string(p.Role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature, method, issuer and expiry, and returns the embedded principal.
func (s *TokenService) Verify(tokenString string) (domain.Principal, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, parserOpts...)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}
	if !domain.ValidRole(claims.Role) {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		UserID:   userID,
		TenantID: tenantID,
		Role:     domain.Role(claims.Role),
	}, nil
}
