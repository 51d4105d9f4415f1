package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/SscSPs/komunity_app/internal/utils"
)

// userService handles account creation, login and password resets.
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	resetExpiry time.Duration
}

// NewUserService creates a user service. resetExpiry bounds the lifetime of reset tokens.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, resetExpiry time.Duration) portssvc.UserSvcFacade {
	if resetExpiry <= 0 {
		resetExpiry = time.Hour
	}
	return &userService{userRepo: userRepo, resetExpiry: resetExpiry}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) RegisterUser(ctx context.Context, req dto.SignUpRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.WithDetail(apperrors.ErrValidation, "Password is too long")
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.SaveUser(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		DateJoined:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Sign up with an email already in use")
			return nil, apperrors.WithDetail(err, "A user with that email already exists.")
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.UserID))
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	invalid := apperrors.WithDetail(apperrors.ErrUnauthorized, "Unable to log in with provided credentials.")

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.Int64("user_id", user.UserID))
		return nil, invalid
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// RequestPasswordReset issues a reset token. The dev backend has no mailer,
// so the token is only logged at debug level.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	token, tokenHash, err := utils.NewResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().UTC().Add(s.resetExpiry)
	if err := s.userRepo.SaveResetToken(ctx, user.UserID, tokenHash, expiry); err != nil {
		s.LogError(ctx, err, "Failed to save reset token", slog.Int64("user_id", user.UserID))
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	s.LogInfo(ctx, "Password reset token issued", slog.Int64("user_id", user.UserID), slog.Time("expires_at", expiry))
	s.LogDebug(ctx, "Password reset token", slog.String("reset_token", token))
	return nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashResetToken(token), time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.WithDetail(apperrors.ErrValidation, "Invalid or expired reset token.")
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return apperrors.WithDetail(apperrors.ErrValidation, "Password is too long")
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, hash); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.Int64("user_id", user.UserID))
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.LogInfo(ctx, "Password reset completed", slog.Int64("user_id", user.UserID))
	return nil
}
