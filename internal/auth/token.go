// Package auth issues and verifies the signed session tokens carried in the
// auth-token header.
package auth

import (
	"fmt"
	"time"

	"tradestreet-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies the caller of an authenticated request.
type Principal struct {
	ID   string     `json:"id"`
	Role model.Role `json:"role"`
}

// Claims is the token payload: {"user": {"id", "role"}} plus registered claims.
type Claims struct {
	User Principal `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A zero ttl issues tokens without an expiry.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(userID string, role model.Role) (string, error) {
	issuedAt := m.now()
	claims := Claims{
		User: Principal{ID: userID, Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its principal. Any failure yields model.ErrInvalidToken.
func (m *TokenManager) Parse(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, model.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Principal{}, model.ErrInvalidToken
	}

	if claims.User.ID == "" {
		return Principal{}, model.ErrInvalidToken
	}
	if !claims.User.Role.Valid() {
		claims.User.Role = model.RoleUser
	}

	return claims.User, nil
}
