package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/platform/config"
	"github.com/SscSPs/komunity_app/internal/utils"
)

// tokenService issues the session tokens the client stores.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token for user %d: %w", user.UserID, err)
	}
	return token, expiresAt, nil
}
