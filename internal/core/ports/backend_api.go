package ports

import (
	"context"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AuthAPI covers the unauthenticated account endpoints.
type AuthAPI interface {
	// ObtainToken exchanges credentials for a session token.
	ObtainToken(ctx context.Context, email, password string) (string, error)
	// SignUp creates an account. It does not log in.
	SignUp(ctx context.Context, email, password string) error
	// RequestPasswordReset asks the backend to email a reset link.
	RequestPasswordReset(ctx context.Context, email string) error
}

// ProfileAPI covers the signed-in user's profile.
type ProfileAPI interface {
	FetchMyProfile(ctx context.Context, sc SessionContext) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, sc SessionContext, profileID int64, req dto.UpdateProfileRequest) (*domain.Profile, error)
}

// CommunityAPI covers groups, memberships and posts.
type CommunityAPI interface {
	FetchGroup(ctx context.Context, sc SessionContext, groupID int64) (*domain.Group, error)
	FetchPost(ctx context.Context, sc SessionContext, postID int64) (*domain.Post, error)
	ListMyGroups(ctx context.Context, sc SessionContext) ([]domain.Group, error)
	ListGroupMembers(ctx context.Context, sc SessionContext, groupID int64) ([]domain.Membership, error)
}

// WalletAPI covers the signed-in user's wallet.
type WalletAPI interface {
	FetchBalance(ctx context.Context, sc SessionContext) (decimal.Decimal, error)
	// ListTransactions returns one page, newest first, and the token of the next page ("" on the last).
	ListTransactions(ctx context.Context, sc SessionContext, pageToken string) ([]domain.Transaction, string, error)
	TopUp(ctx context.Context, sc SessionContext, req dto.TopUpRequest) error
	SendMoney(ctx context.Context, sc SessionContext, req dto.SendMoneyRequest) error
	ContributeToDeceased(ctx context.Context, sc SessionContext, req dto.ContributeRequest) (*domain.ContributionReceipt, error)
}

// FundAPI covers memorial funds.
type FundAPI interface {
	ListFunds(ctx context.Context, sc SessionContext) ([]domain.DeceasedFund, error)
	DisburseFund(ctx context.Context, sc SessionContext, fundID int64) (*domain.Disbursement, error)
}

// BackendAPI combines every backend surface the client uses.
type BackendAPI interface {
	AuthAPI
	ProfileAPI
	CommunityAPI
	WalletAPI
	FundAPI
}

// SessionAPI is the part of the backend the session controller needs.
type SessionAPI interface {
	AuthAPI
	ProfileAPI
	CommunityAPI
}

// WalletBackend is the part of the backend the wallet flow needs.
type WalletBackend interface {
	WalletAPI
	FundAPI
	CommunityAPI
}
