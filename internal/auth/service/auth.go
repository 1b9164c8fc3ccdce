package service

import (
	"crypto/subtle"

	"lumiere/pkg/auth"
	"lumiere/pkg/config"
	apperrors "lumiere/pkg/errors"
)

type AuthService interface {
	Login(password string) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

// Login exchanges the shared operator password for a session token.
func (s *authService) Login(password string) (string, error) {
	if s.cfg.AppPassword == "" || s.cfg.SessionSecret == "" {
		return "", apperrors.Unavailable("Authentication")
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AppPassword)) != 1 {
		s.cfg.Log.Warn("Login attempt with wrong password")
		return "", apperrors.Unauthorized("Invalid password")
	}

	token, err := auth.GenerateToken(s.cfg.SessionSecret, s.cfg.SessionTTL)
	if err != nil {
		s.cfg.Log.Error("Failed to generate session token", "error", err)
		return "", apperrors.Internal("Failed to generate session token", err)
	}

	s.cfg.Log.Info("Operator logged in")
	return token, nil
}
