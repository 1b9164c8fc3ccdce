package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Subject != "operator" {
		t.Errorf("expected subject operator, got %s", claims.Subject)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret"); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "secret"); err == nil {
		t.Error("expected validation to fail for malformed token")
	}
	if _, err := ValidateToken(strings.Repeat("x", 64), "secret"); err == nil {
		t.Error("expected validation to fail for garbage token")
	}
}
