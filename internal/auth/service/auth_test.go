package service

import (
	"testing"
	"time"

	"lumiere/pkg/config"
	apperrors "lumiere/pkg/errors"
	"lumiere/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPassword:   "open-sesame",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		Log:           logger.New(logger.Config{Level: "error", Format: logger.FormatText}),
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewAuthService(testConfig())

	token, err := svc.Login("open-sesame")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(testConfig())

	_, err := svc.Login("wrong")
	if err == nil {
		t.Fatal("expected error for wrong password")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 401 {
		t.Errorf("expected 401 unauthorized, got %v", err)
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.AppPassword = ""
	svc := NewAuthService(cfg)

	if _, err := svc.Login("anything"); err == nil {
		t.Error("expected error when auth is not configured")
	}
}
