package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves the user holding an unexpired reset token.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user together with an empty profile.
	// It returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// SaveResetToken stores the hash of a password reset token and its expiry.
	SaveResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error

	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// ProfileRepositoryFacade reads and updates profiles.
type ProfileRepositoryFacade interface {
	FindProfileByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	FindProfileByID(ctx context.Context, profileID int64) (*domain.Profile, error)
	// UpdateProfile writes the editable fields and the completeness flag.
	UpdateProfile(ctx context.Context, profile domain.Profile) error
}
