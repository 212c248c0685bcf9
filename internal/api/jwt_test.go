package api

import (
	"testing"
	"time"

	"github.com/duddn2012/GameServer/internal/constants"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "test-secret")

	token, err := createSessionToken(7, 0, time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}

	claims, err := parseAndValidateSession(token)
	if err != nil {
		t.Fatalf("parseAndValidateSession: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user 7, got %d", claims.UserID)
	}
	if claims.CharacterID != 0 {
		t.Fatalf("account token should not carry a character, got %d", claims.CharacterID)
	}
}

func TestSessionTokenCharacterScope(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "test-secret")

	token, err := createSessionToken(7, 42, time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	claims, err := parseAndValidateSession(token)
	if err != nil {
		t.Fatalf("parseAndValidateSession: %v", err)
	}
	if claims.CharacterID != 42 {
		t.Fatalf("expected character 42, got %d", claims.CharacterID)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "test-secret")

	token, err := createSessionToken(7, 0, -time.Minute)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	if _, err := parseAndValidateSession(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "test-secret")
	token, err := createSessionToken(7, 0, time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}

	t.Setenv(constants.EnvJWTSecret, "another-secret")
	if _, err := parseAndValidateSession(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestSessionTokenDevSecretStable(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "")

	token, err := createSessionToken(7, 0, time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	// The generated secret must stay the same across calls, or every
	// token would invalidate itself immediately.
	if _, err := parseAndValidateSession(token); err != nil {
		t.Fatalf("token minted with the dev secret must validate: %v", err)
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	t.Setenv(constants.EnvJWTSecret, "test-secret")
	if _, err := parseAndValidateSession("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
