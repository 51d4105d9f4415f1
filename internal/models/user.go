package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       int64      `db:"user_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	DateJoined   time.Time  `db:"date_joined"`
	DeletedAt    *time.Time `db:"deleted_at"`

	// Password reset fields
	ResetTokenHash   sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiry sql.NullTime   `db:"reset_token_expiry"`
}

// Profile is a row of the profiles table.
type Profile struct {
	ProfileID      int64          `db:"profile_id"`
	UserID         int64          `db:"user_id"`
	FirstName      string         `db:"first_name"`
	Surname        string         `db:"surname"`
	Phone          string         `db:"phone"`
	Bio            string         `db:"bio"`
	ProfilePicture sql.NullString `db:"profile_picture"`
	IsDeceased     bool           `db:"is_deceased"`
	IsComplete     bool           `db:"is_complete"`
	AuditFields
}
