package services

import (
	"context"
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
)

// UserAuthSvc defines operations for account creation and authentication
type UserAuthSvc interface {
	// RegisterUser creates an account with an empty profile.
	RegisterUser(ctx context.Context, req dto.SignUpRequest) (*domain.User, error)

	// AuthenticateUser checks email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// RequestPasswordReset starts a reset for email. Unknown emails are not reported.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset sets a new password using a token issued by RequestPasswordReset.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserAuthSvc
	UserReaderSvc
}

// TokenSvcFacade issues session tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// ProfileSvcFacade reads and edits profiles.
type ProfileSvcFacade interface {
	GetMyProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	// UpdateProfile edits profileID, which must belong to requestingUserID.
	UpdateProfile(ctx context.Context, profileID int64, req dto.UpdateProfileRequest, requestingUserID int64) (*domain.Profile, error)
}

// CommunitySvcFacade reads groups, members and posts visible to a user.
type CommunitySvcFacade interface {
	GetGroup(ctx context.Context, groupID, requestingUserID int64) (*domain.Group, error)
	ListMyGroups(ctx context.Context, userID int64) ([]domain.Group, error)
	ListGroupMembers(ctx context.Context, groupID, requestingUserID int64) ([]domain.Membership, error)
	GetPost(ctx context.Context, postID, requestingUserID int64) (*domain.Post, error)
}

// WalletSvcFacade runs wallet operations on behalf of a user.
type WalletSvcFacade interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
	TopUp(ctx context.Context, userID int64, req dto.TopUpRequest) (*domain.WalletOperation, error)
	SendMoney(ctx context.Context, userID int64, req dto.SendMoneyRequest) (*domain.WalletOperation, error)
	ContributeToDeceased(ctx context.Context, userID int64, req dto.ContributeRequest) (*domain.WalletOperation, error)
}

// FundSvcFacade lists and disburses memorial funds.
type FundSvcFacade interface {
	ListFunds(ctx context.Context, userID int64) ([]domain.DeceasedFund, error)
	DisburseFund(ctx context.Context, fundID, requestingUserID int64) (*domain.Disbursement, error)
}

// ServiceContainer holds instances of all the backend services.
// It is the entry point the handlers use.
type ServiceContainer struct {
	User      UserSvcFacade
	Token     TokenSvcFacade
	Profile   ProfileSvcFacade
	Community CommunitySvcFacade
	Wallet    WalletSvcFacade
	Fund      FundSvcFacade
}
