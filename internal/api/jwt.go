package api

import (
	crand "crypto/rand"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the token payload. CharacterID is zero for
// account-only tokens; play endpoints require a character-scoped token.
type sessionClaims struct {
	UserID      uint `json:"uid"`
	CharacterID uint `json:"cid,omitempty"`
	jwt.RegisteredClaims
}

var (
	devSecret     []byte
	devSecretOnce sync.Once
	devSecretErr  error
)

func sessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvJWTSecret)
	if secret == "" {
		// Generate an in-memory secret for development if not set
		devSecretOnce.Do(func() {
			devSecret = make([]byte, 32)
			if _, err := crand.Read(devSecret); err != nil {
				devSecretErr = errors.New("failed to generate dev session secret")
			}
		})
		return devSecret, devSecretErr
	}
	return []byte(secret), nil
}

// createSessionToken mints a signed session token for the given user,
// optionally scoped to one of their characters.
func createSessionToken(userID, characterID uint, ttl time.Duration) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		UserID:      userID,
		CharacterID: characterID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseAndValidateSession verifies the token signature and expiry and
// returns its claims.
func parseAndValidateSession(token string) (*sessionClaims, error) {
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return &claims, nil
}
