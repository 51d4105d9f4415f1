package dto

import "time"

// LoginRequest is the body of POST auth-token/. The username is the account email.
type LoginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the session token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignUpRequest is the body of POST users/signup/.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignUpForm is what the user enters on the signup screen, validated before any call.
type SignUpForm struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// PasswordResetRequest is the body of POST password-reset/.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// StatusResponse is the generic acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         int64            `json:"id"`
	Email      string           `json:"email"`
	Profile    *ProfileResponse `json:"profile,omitempty"`
	DateJoined time.Time        `json:"date_joined"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PasswordResetConfirmRequest is the body of POST password-reset/confirm/.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
