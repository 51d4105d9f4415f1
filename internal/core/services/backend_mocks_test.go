package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, tokenHash, now)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	var saved *domain.User
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.User)
	}
	return saved, args.Error(1)
}

func (m *MockUserRepository) SaveResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID int64) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

var _ portsrepo.ProfileRepositoryFacade = (*MockProfileRepository)(nil)

// --- Mock CommunityRepository ---
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) FindGroupByID(ctx context.Context, groupID, viewerUserID int64) (*domain.Group, error) {
	args := m.Called(ctx, groupID, viewerUserID)
	var group *domain.Group
	if args.Get(0) != nil {
		group = args.Get(0).(*domain.Group)
	}
	return group, args.Error(1)
}

func (m *MockCommunityRepository) FindGroupsByMember(ctx context.Context, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	var groups []domain.Group
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.Group)
	}
	return groups, args.Error(1)
}

func (m *MockCommunityRepository) FindMemberships(ctx context.Context, groupID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, groupID)
	var members []domain.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Membership)
	}
	return members, args.Error(1)
}

func (m *MockCommunityRepository) FindMembership(ctx context.Context, groupID, userID int64) (*domain.Membership, error) {
	args := m.Called(ctx, groupID, userID)
	var membership *domain.Membership
	if args.Get(0) != nil {
		membership = args.Get(0).(*domain.Membership)
	}
	return membership, args.Error(1)
}

func (m *MockCommunityRepository) FindPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

var _ portsrepo.CommunityRepositoryFacade = (*MockCommunityRepository)(nil)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, userID int64, limit int, pageToken string) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, userID, limit, pageToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.String(1), args.Error(2)
}

func (m *MockWalletRepository) SaveCredit(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

func (m *MockWalletRepository) SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, debit, credit)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

// --- Mock FundRepository ---
type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) FindFundByID(ctx context.Context, fundID int64) (*domain.DeceasedFund, error) {
	args := m.Called(ctx, fundID)
	var fund *domain.DeceasedFund
	if args.Get(0) != nil {
		fund = args.Get(0).(*domain.DeceasedFund)
	}
	return fund, args.Error(1)
}

func (m *MockFundRepository) FindFundsForMember(ctx context.Context, userID int64) ([]domain.DeceasedFund, error) {
	args := m.Called(ctx, userID)
	var funds []domain.DeceasedFund
	if args.Get(0) != nil {
		funds = args.Get(0).([]domain.DeceasedFund)
	}
	return funds, args.Error(1)
}

func (m *MockFundRepository) SaveContribution(ctx context.Context, debit domain.Transaction, contribution domain.Contribution) (*domain.Contribution, *domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, debit, contribution)
	var stored *domain.Contribution
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.Contribution)
	}
	var saved *domain.Transaction
	if args.Get(1) != nil {
		saved = args.Get(1).(*domain.Transaction)
	}
	return stored, saved, args.Get(2).(decimal.Decimal), args.Error(3)
}

func (m *MockFundRepository) MarkDisbursed(ctx context.Context, fundID int64, payout domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, fundID, payout)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

var _ portsrepo.FundRepositoryFacade = (*MockFundRepository)(nil)
