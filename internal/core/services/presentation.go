package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// UserError is a failure whose title and message are meant to be shown as is.
type UserError struct {
	Title   string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

func userError(cause error, title, message string) error {
	return &UserError{Title: title, Message: message, Cause: cause}
}

// Operation names a user action for alert wording.
type Operation string

const (
	OpLogin         Operation = "login"
	OpSignUp        Operation = "signup"
	OpPasswordReset Operation = "password_reset"
	OpProfileSetup  Operation = "profile_setup"
	OpDeepLink      Operation = "deep_link"
	OpTopUp         Operation = "top_up"
	OpSendMoney     Operation = "send_money"
	OpContribute    Operation = "contribute"
	OpDisburse      Operation = "disburse"
)

var fallbackMessages = map[Operation]string{
	OpLogin:         "Login failed. Please check your credentials and try again.",
	OpSignUp:        "Could not create your account. Please try again.",
	OpPasswordReset: "Could not send the reset link. Please try again.",
	OpProfileSetup:  "Could not save your profile. Please try again.",
	OpDeepLink:      "Could not open the link.",
	OpTopUp:         "Failed to process top-up. Please try again.",
	OpSendMoney:     "Failed to send money. Please try again.",
	OpContribute:    "Failed to process contribution. Please try again.",
	OpDisburse:      "Failed to disburse funds. Please try again.",
}

// AlertFor turns the outcome of op into the alert to show.
// It reports false when nothing should be shown: on success and on a cancelled challenge.
func AlertFor(op Operation, err error) (ports.Alert, bool) {
	if apperrors.KindOf(err) == apperrors.KindSuccess || apperrors.KindOf(err) == apperrors.KindCancelled {
		return ports.Alert{}, false
	}
	// The gate already alerted on its own failures.
	if errors.Is(err, apperrors.ErrReauthDeclined) {
		return ports.Alert{}, false
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return ports.Alert{Title: userErr.Title, Message: userErr.Message}, true
	}
	if apperrors.KindOf(err) == apperrors.KindNetwork {
		var serverErr *apperrors.ServerError
		if !errors.As(err, &serverErr) {
			return ports.Alert{Title: "Connection Problem", Message: "Could not reach Komunity. Check your connection and try again."}, true
		}
	}
	return ports.Alert{Title: "Error", Message: apperrors.MessageOf(err, fallbackMessages[op])}, true
}

type validationMessage struct {
	key     string // Field.tag
	message string
}

var signUpMessages = []validationMessage{
	{"Email.required", "Please fill in all fields"},
	{"Password.required", "Please fill in all fields"},
	{"ConfirmPassword.required", "Please fill in all fields"},
	{"ConfirmPassword.eqfield", "Passwords do not match"},
	{"Password.min", "Password must be at least 8 characters long"},
	{"Email.email", "Please enter a valid email address"},
}

var profileMessages = []validationMessage{
	{"FirstName.required", "First name and surname are required"},
	{"Surname.required", "First name and surname are required"},
	{"FirstName.max", "First name is too long"},
	{"Surname.max", "Surname is too long"},
	{"Phone.max", "Phone number is too long"},
	{"Bio.max", "Bio is too long"},
}

// describeValidation picks the message of the highest-priority failed rule.
func describeValidation(err error, messages []validationMessage) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()+"."+fe.Tag()] = true
	}
	for _, m := range messages {
		if failed[m.key] {
			return m.message
		}
	}
	return fmt.Sprintf("%s is invalid", fieldErrs[0].Field())
}

func sendPrompt(amount decimal.Decimal, recipient string) string {
	return fmt.Sprintf("Authenticate to send %s to %s", domain.FormatCurrency(amount), recipient)
}

func contributePrompt(amount decimal.Decimal, deceased string) string {
	return fmt.Sprintf("Authenticate to contribute %s to %s's fund", domain.FormatCurrency(amount), deceased)
}

func disbursePrompt(amount decimal.Decimal, beneficiary string) string {
	return fmt.Sprintf("Authenticate to disburse %s to %s", domain.FormatCurrency(amount), beneficiary)
}
