package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/security"
	"github.com/roulettesim/roulettesim-go/pkg/config"
)

var (
	// ErrInvalidCredentials is returned for a wrong operator password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthNotConfigured is returned when no operator password hash is set.
	ErrAuthNotConfigured = errors.New("operator auth not configured")
)

// AuthService handles operator login for the metrics surface. Visitors never
// authenticate; their sessions are anonymous tokens.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates the auth service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the operator password and issues a signed token.
func (as *AuthService) Login(password string) (string, error) {
	if config.AdminPasswordHash == "" {
		return "", ErrAuthNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err != nil {
		as.logger.Auth().Warn("Operator login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateOperatorToken(config.JWTSecret)
	if err != nil {
		return "", err
	}

	as.logger.Auth().Info("Operator login succeeded")
	return token, nil
}

// Validate checks an operator token.
func (as *AuthService) Validate(tokenString string) error {
	_, err := security.ValidateJWT(tokenString, config.JWTSecret)
	return err
}
