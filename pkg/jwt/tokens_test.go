package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := Parse(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse(token, "other-secret"); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-123", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse(token, "secret"); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseRejectsMalformedToken(t *testing.T) {
	if _, err := Parse("not-a-token", "secret"); err == nil {
		t.Fatal("expected malformed token to fail")
	}
}
