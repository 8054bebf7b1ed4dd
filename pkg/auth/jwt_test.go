package auth

import (
	"testing"
	"time"
)

func TestGameTokenRoundTrip(t *testing.T) {
	token, err := GenerateGameToken("secret", "game-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateGameToken("secret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.GameID != "game-1" {
		t.Fatalf("expected game-1, got %s", claims.GameID)
	}
}

func TestGameTokenRejectsWrongSecret(t *testing.T) {
	token, _ := GenerateGameToken("secret", "game-1", time.Hour)
	if _, err := ValidateGameToken("other", token); err == nil {
		t.Fatalf("expected an error for a token signed with another secret")
	}
}

func TestGameTokenExpired(t *testing.T) {
	token, _ := GenerateGameToken("secret", "game-1", -time.Minute)
	if _, err := ValidateGameToken("secret", token); err == nil {
		t.Fatalf("expected an error for an expired token")
	}
}

func TestGenerateGameTokenNeedsSecret(t *testing.T) {
	if _, err := GenerateGameToken("", "game-1", time.Hour); err == nil {
		t.Fatalf("expected an error for an empty secret")
	}
}
