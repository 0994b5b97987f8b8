// Package auth issues and verifies the JWTs carried by admin panel requests.
// Verified claims become an explicit Context value handed to services; nothing
// reads identity from ambient state.
package auth

import (
	"errors"
	"time"

	"bigbang-quiz-service/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Context is the verified identity attached to one request.
type Context struct {
	AdminID         int64
	Name            string
	Email           string
	SuperAdmin      bool
	CanDeleteQuiz   bool
	CanDeleteScores bool
	CanManageAdmins bool
}

// Claims is the JWT payload for an administrator token.
type Claims struct {
	jwt.RegisteredClaims
	AdminID         int64  `json:"adminId"`
	Name            string `json:"nome"`
	Email           string `json:"email"`
	SuperAdmin      bool   `json:"superAdmin"`
	CanDeleteQuiz   bool   `json:"excluiQuiz"`
	CanDeleteScores bool   `json:"excluiRanking"`
	CanManageAdmins bool   `json:"gerenciaAdministradores"`
}

// TokenService signs and verifies HS256 tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// NewTokenServiceWithClock is test-only for deterministic expiry.
func NewTokenServiceWithClock(secret string, ttl time.Duration, now func() time.Time) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a token for the administrator carrying their permission flags.
func (t *TokenService) Issue(admin domain.Administrator) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bigbang-quiz",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		AdminID:         admin.ID,
		Name:            admin.Name,
		Email:           admin.Email,
		SuperAdmin:      admin.SuperAdmin,
		CanDeleteQuiz:   admin.CanDeleteQuiz,
		CanDeleteScores: admin.CanDeleteScores,
		CanManageAdmins: admin.CanManageAdmins,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token and returns the request context for it.
func (t *TokenService) Verify(raw string) (Context, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return Context{}, domain.ErrPermissionDenied
	}
	return Context{
		AdminID:         claims.AdminID,
		Name:            claims.Name,
		Email:           claims.Email,
		SuperAdmin:      claims.SuperAdmin,
		CanDeleteQuiz:   claims.CanDeleteQuiz,
		CanDeleteScores: claims.CanDeleteScores,
		CanManageAdmins: claims.CanManageAdmins,
	}, nil
}
