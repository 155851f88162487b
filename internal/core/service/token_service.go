package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

const (
	tokenClassAccess  = "access"
	tokenClassRefresh = "refresh"
)

type tokenClaims struct {
	Role  string `json:"role"`
	Class string `json:"token_class"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed tokens. It is stateless apart
// from the signing secret, which is injected once at construction.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(userID, role string) (string, error) {
	return s.issue(userID, role, tokenClassAccess, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(userID, role string) (string, error) {
	return s.issue(userID, role, tokenClassRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID, role, class string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role:  role,
		Class: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyAccess validates an access token. A refresh token presented here fails
// with ErrInvalidToken: the long-lived token must never authenticate requests.
func (s *TokenService) VerifyAccess(token string) (*ports.Identity, error) {
	return s.verify(token, tokenClassAccess)
}

// VerifyRefresh validates a refresh token for the exchange flow.
func (s *TokenService) VerifyRefresh(token string) (*ports.Identity, error) {
	return s.verify(token, tokenClassRefresh)
}

// verify decodes and validates a token. Signature mismatch, elapsed expiry,
// wrong token class and malformed input all yield domain.ErrInvalidToken,
// never a panic.
func (s *TokenService) verify(token, wantClass string) (*ports.Identity, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" || claims.Class != wantClass {
		return nil, domain.ErrInvalidToken
	}
	return &ports.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
