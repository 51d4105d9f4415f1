package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.SignUpRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock ProfileService ---
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetMyProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, profileID int64, req dto.UpdateProfileRequest, requestingUserID int64) (*domain.Profile, error) {
	args := m.Called(ctx, profileID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// --- Mock CommunityService ---
type MockCommunityService struct {
	mock.Mock
}

func (m *MockCommunityService) GetGroup(ctx context.Context, groupID, requestingUserID int64) (*domain.Group, error) {
	args := m.Called(ctx, groupID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockCommunityService) ListMyGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockCommunityService) ListGroupMembers(ctx context.Context, groupID, requestingUserID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, groupID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockCommunityService) GetPost(ctx context.Context, postID, requestingUserID int64) (*domain.Post, error) {
	args := m.Called(ctx, postID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

func (m *MockWalletService) TopUp(ctx context.Context, userID int64, req dto.TopUpRequest) (*domain.WalletOperation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletOperation), args.Error(1)
}

func (m *MockWalletService) SendMoney(ctx context.Context, userID int64, req dto.SendMoneyRequest) (*domain.WalletOperation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletOperation), args.Error(1)
}

func (m *MockWalletService) ContributeToDeceased(ctx context.Context, userID int64, req dto.ContributeRequest) (*domain.WalletOperation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletOperation), args.Error(1)
}

// --- Mock FundService ---
type MockFundService struct {
	mock.Mock
}

func (m *MockFundService) ListFunds(ctx context.Context, userID int64) ([]domain.DeceasedFund, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeceasedFund), args.Error(1)
}

func (m *MockFundService) DisburseFund(ctx context.Context, fundID, requestingUserID int64) (*domain.Disbursement, error) {
	args := m.Called(ctx, fundID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disbursement), args.Error(1)
}

var (
	_ portssvc.TokenSvcFacade     = (*MockTokenService)(nil)
	_ portssvc.ProfileSvcFacade   = (*MockProfileService)(nil)
	_ portssvc.CommunitySvcFacade = (*MockCommunityService)(nil)
	_ portssvc.WalletSvcFacade    = (*MockWalletService)(nil)
	_ portssvc.FundSvcFacade      = (*MockFundService)(nil)
)
