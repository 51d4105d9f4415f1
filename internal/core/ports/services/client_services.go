package services

import (
	"context"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/SscSPs/komunity_app/internal/dto"
)

// SessionReaderSvc exposes the current session and navigation state.
type SessionReaderSvc interface {
	Phase() domain.Phase
	Session() domain.Session
	SessionContext() ports.SessionContext
	Navigation() domain.Navigation
	Screen() domain.Screen
	Title() string
}

// SessionWriterSvc drives session and navigation transitions.
type SessionWriterSvc interface {
	// Start restores a persisted session. It never fails; problems land in LoggedOut.
	Start(ctx context.Context) domain.Phase
	Login(ctx context.Context, email, password string) error
	ShowSignUp() error
	ShowPasswordReset() error
	BackToLogin() error
	SignUp(ctx context.Context, form dto.SignUpForm) error
	RequestPasswordReset(ctx context.Context, email string) error
	CompleteProfile(ctx context.Context, form dto.ProfileForm) error
	ChooseJoin() error
	ChooseCreate() error
	// RefreshProfile re-reads profile completeness. Failures are logged and leave state unchanged.
	RefreshProfile(ctx context.Context)
	Logout(ctx context.Context) error

	SwitchTab(tab domain.Tab) error
	Open(focus domain.Focus) error
	Close(kind domain.FocusKind) bool
	Back() bool
	OpenDeepLink(ctx context.Context, rawURL string) error
}

// SessionControllerSvc combines session reads and writes.
type SessionControllerSvc interface {
	SessionReaderSvc
	SessionWriterSvc
}

// ReauthGateSvc confirms a money movement with a local challenge.
type ReauthGateSvc interface {
	Confirm(ctx context.Context, reason string) bool
}

// WalletReaderSvc exposes the last fetched wallet state.
type WalletReaderSvc interface {
	Balance() domain.WalletBalance
	History() []domain.Transaction
	Funds() []domain.DeceasedFund
	Drafts() dto.WalletDrafts
	// Recipients lists members of the caller's groups who can receive money.
	Recipients(ctx context.Context) ([]domain.MemberRef, error)
}

// WalletWriterSvc runs wallet operations.
type WalletWriterSvc interface {
	Refresh(ctx context.Context) error
	// LoadMoreHistory appends the next history page and reports whether there was one.
	LoadMoreHistory(ctx context.Context) (bool, error)
	RefreshFunds(ctx context.Context) error
	TopUp(ctx context.Context, form dto.TopUpForm) error
	SendMoney(ctx context.Context, form dto.SendForm) error
	ContributeToDeceased(ctx context.Context, form dto.ContributeForm) error
	DisburseFund(ctx context.Context, fund domain.DeceasedFund) (*domain.Disbursement, error)
}

// WalletFlowSvc combines wallet reads and writes.
type WalletFlowSvc interface {
	WalletReaderSvc
	WalletWriterSvc
}
