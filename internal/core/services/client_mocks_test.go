package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock backend (covers SessionAPI and WalletBackend) ---
type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) ObtainToken(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockBackendAPI) SignUp(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockBackendAPI) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockBackendAPI) FetchMyProfile(ctx context.Context, sc ports.SessionContext) (*domain.Profile, error) {
	args := m.Called(ctx, sc)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockBackendAPI) UpdateProfile(ctx context.Context, sc ports.SessionContext, profileID int64, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, sc, profileID, req)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockBackendAPI) FetchGroup(ctx context.Context, sc ports.SessionContext, groupID int64) (*domain.Group, error) {
	args := m.Called(ctx, sc, groupID)
	var group *domain.Group
	if args.Get(0) != nil {
		group = args.Get(0).(*domain.Group)
	}
	return group, args.Error(1)
}

func (m *MockBackendAPI) FetchPost(ctx context.Context, sc ports.SessionContext, postID int64) (*domain.Post, error) {
	args := m.Called(ctx, sc, postID)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *MockBackendAPI) ListMyGroups(ctx context.Context, sc ports.SessionContext) ([]domain.Group, error) {
	args := m.Called(ctx, sc)
	var groups []domain.Group
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.Group)
	}
	return groups, args.Error(1)
}

func (m *MockBackendAPI) ListGroupMembers(ctx context.Context, sc ports.SessionContext, groupID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, sc, groupID)
	var members []domain.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Membership)
	}
	return members, args.Error(1)
}

func (m *MockBackendAPI) FetchBalance(ctx context.Context, sc ports.SessionContext) (decimal.Decimal, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBackendAPI) ListTransactions(ctx context.Context, sc ports.SessionContext, pageToken string) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, sc, pageToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.String(1), args.Error(2)
}

func (m *MockBackendAPI) TopUp(ctx context.Context, sc ports.SessionContext, req dto.TopUpRequest) error {
	args := m.Called(ctx, sc, req)
	return args.Error(0)
}

func (m *MockBackendAPI) SendMoney(ctx context.Context, sc ports.SessionContext, req dto.SendMoneyRequest) error {
	args := m.Called(ctx, sc, req)
	return args.Error(0)
}

func (m *MockBackendAPI) ContributeToDeceased(ctx context.Context, sc ports.SessionContext, req dto.ContributeRequest) (*domain.ContributionReceipt, error) {
	args := m.Called(ctx, sc, req)
	var receipt *domain.ContributionReceipt
	if args.Get(0) != nil {
		receipt = args.Get(0).(*domain.ContributionReceipt)
	}
	return receipt, args.Error(1)
}

func (m *MockBackendAPI) ListFunds(ctx context.Context, sc ports.SessionContext) ([]domain.DeceasedFund, error) {
	args := m.Called(ctx, sc)
	var funds []domain.DeceasedFund
	if args.Get(0) != nil {
		funds = args.Get(0).([]domain.DeceasedFund)
	}
	return funds, args.Error(1)
}

func (m *MockBackendAPI) DisburseFund(ctx context.Context, sc ports.SessionContext, fundID int64) (*domain.Disbursement, error) {
	args := m.Called(ctx, sc, fundID)
	var disbursement *domain.Disbursement
	if args.Get(0) != nil {
		disbursement = args.Get(0).(*domain.Disbursement)
	}
	return disbursement, args.Error(1)
}

var _ ports.BackendAPI = (*MockBackendAPI)(nil)

// --- Mock TokenStore ---
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock DeepLinkResolver ---
type MockDeepLinkResolver struct {
	mock.Mock
}

func (m *MockDeepLinkResolver) Parse(rawURL string) (ports.DeepLinkTarget, error) {
	args := m.Called(rawURL)
	return args.Get(0).(ports.DeepLinkTarget), args.Error(1)
}

// --- Mock Challenger ---
type MockChallenger struct {
	mock.Mock
}

func (m *MockChallenger) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockChallenger) Challenge(ctx context.Context, reason string) error {
	args := m.Called(ctx, reason)
	return args.Error(0)
}

// --- Mock ReauthGate ---
type MockReauthGate struct {
	mock.Mock
}

func (m *MockReauthGate) Confirm(ctx context.Context, reason string) bool {
	args := m.Called(ctx, reason)
	return args.Bool(0)
}

// recordingAlerter keeps every alert it is shown.
type recordingAlerter struct {
	mu     sync.Mutex
	alerts []ports.Alert
}

func (r *recordingAlerter) Alert(_ context.Context, a ports.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

func (r *recordingAlerter) All() []ports.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Alert(nil), r.alerts...)
}

func (r *recordingAlerter) Last() ports.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return ports.Alert{}
	}
	return r.alerts[len(r.alerts)-1]
}

// staticSession is a fixed signed-in session for wallet tests.
type staticSession struct {
	session domain.Session
}

func (s staticSession) Phase() domain.Phase { return domain.PhaseMain }
func (s staticSession) Session() domain.Session {
	return s.session
}
func (s staticSession) SessionContext() ports.SessionContext {
	return ports.SessionContext{Token: s.session.Token}
}
func (s staticSession) Navigation() domain.Navigation { return domain.NewNavigation() }
func (s staticSession) Screen() domain.Screen         { return domain.NewNavigation().Screen() }
func (s staticSession) Title() string                 { return "Wallet" }
