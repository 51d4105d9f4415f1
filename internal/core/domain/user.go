package domain

import (
	"strings"
	"time"
)

// User is an account holder on the backend.
type User struct {
	UserID       int64      `json:"userID"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DateJoined   time.Time  `json:"dateJoined"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// Profile holds the personal details attached to a User.
type Profile struct {
	ProfileID      int64  `json:"profileID"`
	UserID         int64  `json:"userID"`
	FirstName      string `json:"firstName"`
	Surname        string `json:"surname"`
	Phone          string `json:"phone"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	IsDeceased     bool   `json:"isDeceased"`
	Complete       bool   `json:"isComplete"`
	AuditFields
}

// FullName joins first name and surname.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}

// HasRequiredFields reports whether the fields required to use the app are set.
func (p Profile) HasRequiredFields() bool {
	return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.Surname) != ""
}
