package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/SscSPs/komunity_app/internal/models"
	"github.com/SscSPs/komunity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, date_joined, deleted_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Email, &m.PasswordHash, &m.DateJoined, &m.DeletedAt)
	return m, err
}

// SaveUser inserts the user and an empty profile in one transaction.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	modelUser := mapping.ToModelUser(user)
	var saved models.User
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, date_joined)
			VALUES ($1, $2, $3)
			RETURNING ` + userColumns + `;
		`
		var err error
		saved, err = scanUser(tx.QueryRow(ctx, query, modelUser.Email, modelUser.PasswordHash, modelUser.DateJoined))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: a user with email %s already exists", apperrors.ErrDuplicate, modelUser.Email)
			}
			return fmt.Errorf("failed to save user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, created_at, last_updated_at)
			VALUES ($1, $2, $2);
		`, saved.UserID, modelUser.DateJoined)
		if err != nil {
			return fmt.Errorf("failed to create profile for user %d: %w", saved.UserID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	domainUser := mapping.ToDomainUser(saved)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expiry > $2 AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.Pool.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) SaveResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $1, reset_token_expiry = $2
		WHERE user_id = $3 AND deleted_at IS NULL;
	`, tokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE user_id = $2 AND deleted_at IS NULL;
	`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

const profileColumns = `profile_id, user_id, first_name, surname, phone, bio, profile_picture,
	is_deceased, is_complete, created_at, last_updated_at`

func scanProfile(row pgx.Row) (models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID,
		&m.UserID,
		&m.FirstName,
		&m.Surname,
		&m.Phone,
		&m.Bio,
		&m.ProfilePicture,
		&m.IsDeceased,
		&m.IsComplete,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxProfileRepository) findProfile(ctx context.Context, where string, arg int64) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` = $1;`
	modelProfile, err := scanProfile(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by %s %d: %w", where, arg, err)
	}
	domainProfile := mapping.ToDomainProfile(modelProfile)
	return &domainProfile, nil
}

func (r *PgxProfileRepository) FindProfileByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	return r.findProfile(ctx, "user_id", userID)
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID int64) (*domain.Profile, error) {
	return r.findProfile(ctx, "profile_id", profileID)
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	query := `
		UPDATE profiles
		SET first_name = $1, surname = $2, phone = $3, bio = $4, is_complete = $5, last_updated_at = $6
		WHERE profile_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.FirstName,
		m.Surname,
		m.Phone,
		m.Bio,
		m.IsComplete,
		m.LastUpdatedAt,
		m.ProfileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile %d: %w", m.ProfileID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile %d: %w", m.ProfileID, apperrors.ErrNotFound)
	}
	return nil
}
