package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// DefaultBcryptCost matches the cost used for stored password hashes.
const DefaultBcryptCost = 12

// ErrInvalidToken is returned by Resolve for a malformed, tampered, or
// expired token.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer issues and resolves signed bearer tokens.
//
// Tokens are HS256 JWTs carrying the subject user id and an absolute expiry.
// There is no refresh mechanism; clients re-authenticate after expiry.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

// NewTokenIssuer builds a TokenIssuer from the signing key and token TTL.
// A zero ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(key string, ttl time.Duration, logger *zap.Logger) (*TokenIssuer, error) {
	if key == "" {
		return nil, fmt.Errorf("token key is empty; provide ≥32 random chars")
	}
	if len(key) < 32 && logger != nil {
		logger.Warn("token key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{key: []byte(key), ttl: ttl}, nil
}

// Issue creates a signed token for the given user id.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Resolve validates the token signature and expiry and returns the subject
// user id. Any parse or validation failure maps to ErrInvalidToken; whether
// the subject still exists is the caller's concern.
func (t *TokenIssuer) Resolve(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HashPassword hashes a password with bcrypt at the given cost.
// A cost of 0 uses DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
