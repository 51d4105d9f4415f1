package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletFlowTestSuite struct {
	suite.Suite
	mockAPI  *MockBackendAPI
	mockGate *MockReauthGate
	alerter  *recordingAlerter
	flow     portssvc.WalletFlowSvc
	ctx      context.Context
	clock    time.Time
}

func (suite *WalletFlowTestSuite) SetupTest() {
	suite.mockAPI = new(MockBackendAPI)
	suite.mockGate = new(MockReauthGate)
	suite.alerter = &recordingAlerter{}
	suite.ctx = context.Background()
	suite.clock = time.UnixMilli(1_700_000_000_123)
	session := staticSession{session: domain.Session{
		Token:           "tok-1",
		ProfileComplete: true,
		Profile:         &domain.Profile{ProfileID: 7, UserID: 3, FirstName: "Ama", Surname: "Mensah"},
	}}
	suite.flow = services.NewWalletFlow(suite.mockAPI, session,
		services.WithReauthGate(suite.mockGate),
		services.WithAlerter(suite.alerter),
		services.WithClock(func() time.Time { return suite.clock }),
	)
}

func (suite *WalletFlowTestSuite) TearDownTest() {
	suite.mockAPI.AssertExpectations(suite.T())
	suite.mockGate.AssertExpectations(suite.T())
}

func TestWalletFlowTestSuite(t *testing.T) {
	suite.Run(t, new(WalletFlowTestSuite))
}

var kofi = domain.MemberRef{ProfileID: 8, UserID: 4, FullName: "Kofi Boateng"}

// expectRefresh expects exactly one balance + history refetch.
func (suite *WalletFlowTestSuite) expectRefresh(balance string) {
	suite.mockAPI.On("FetchBalance", mock.Anything, tokenSC).Return(decimal.RequireFromString(balance), nil).Once()
	suite.mockAPI.On("ListTransactions", mock.Anything, tokenSC, "").Return([]domain.Transaction{}, "", nil).Once()
}

// loadBalance performs an initial refresh so the flow knows the balance.
func (suite *WalletFlowTestSuite) loadBalance(balance string) {
	suite.expectRefresh(balance)
	suite.Require().NoError(suite.flow.Refresh(suite.ctx))
}

func (suite *WalletFlowTestSuite) TestRefresh_LoadsBalanceAndHistory() {
	txns := []domain.Transaction{
		{TransactionID: 2, Type: domain.TopUp, Amount: decimal.NewFromInt(50), Status: domain.StatusCompleted},
	}
	suite.mockAPI.On("FetchBalance", mock.Anything, tokenSC).Return(decimal.NewFromInt(50), nil).Once()
	suite.mockAPI.On("ListTransactions", mock.Anything, tokenSC, "").Return(txns, "next-1", nil).Once()
	suite.mockAPI.On("ListTransactions", suite.ctx, tokenSC, "next-1").Return([]domain.Transaction{{TransactionID: 1}}, "", nil).Once()

	suite.Require().NoError(suite.flow.Refresh(suite.ctx))
	suite.Equal(domain.WalletBalance{Amount: decimal.NewFromInt(50), Known: true}, suite.flow.Balance())
	suite.Len(suite.flow.History(), 1)

	more, err := suite.flow.LoadMoreHistory(suite.ctx)
	suite.Require().NoError(err)
	suite.True(more)
	suite.Len(suite.flow.History(), 2)

	more, err = suite.flow.LoadMoreHistory(suite.ctx)
	suite.Require().NoError(err)
	suite.False(more)
}

func (suite *WalletFlowTestSuite) TestRefresh_FailureKeepsPreviousState() {
	suite.loadBalance("50")
	suite.mockAPI.On("FetchBalance", mock.Anything, tokenSC).Return(decimal.Zero, errors.New("timeout")).Once()
	suite.mockAPI.On("ListTransactions", mock.Anything, tokenSC, "").Return([]domain.Transaction{}, "", nil).Maybe()

	suite.Error(suite.flow.Refresh(suite.ctx))
	suite.True(suite.flow.Balance().Amount.Equal(decimal.NewFromInt(50)))
}

func (suite *WalletFlowTestSuite) TestSendMoney_InsufficientLocalBalance() {
	suite.loadBalance("50.00")

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "75.00"})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal("Insufficient Funds", suite.alerter.Last().Title)
	suite.Equal("You do not have enough balance for this transfer.", suite.alerter.Last().Message)
	suite.Equal("$50.00", domain.FormatCurrency(suite.flow.Balance().Amount))
	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "SendMoney", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal("75.00", suite.flow.Drafts().Send.Amount)
}

func (suite *WalletFlowTestSuite) TestSendMoney_UnknownBalanceIsInsufficient() {
	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "1"})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal(ports.Alert{
		Title:   "Balance Unavailable",
		Message: "Could not confirm your balance. Please refresh and try again.",
	}, suite.alerter.Last())
	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "SendMoney", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestContribute_UnknownBalanceAsksForRefresh() {
	suite.mockAPI.On("FetchBalance", mock.Anything, tokenSC).Return(decimal.Zero, errors.New("timeout")).Once()
	suite.mockAPI.On("ListTransactions", mock.Anything, tokenSC, "").Return([]domain.Transaction{}, "", nil).Maybe()
	suite.Error(suite.flow.Refresh(suite.ctx))

	err := suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: openFund(), Amount: "5"})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal("Balance Unavailable", suite.alerter.Last().Title)
	suite.Equal("Could not confirm your balance. Please refresh and try again.", suite.alerter.Last().Message)
	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "ContributeToDeceased", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestSendMoney_LocalValidation() {
	suite.loadBalance("50")

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Amount: "10"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("No Recipient", suite.alerter.Last().Title)

	for _, amount := range []string{"", "abc", "0", "-5"} {
		err = suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: amount})
		suite.ErrorIs(err, apperrors.ErrValidation, "amount %q", amount)
		suite.Equal("Invalid Amount", suite.alerter.Last().Title)
	}

	self := domain.MemberRef{ProfileID: 7, UserID: 3, FullName: "Ama Mensah"}
	err = suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &self, Amount: "10"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Cannot send money to yourself", suite.alerter.Last().Message)

	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestSendMoney_GateDeclinedMakesNoCall() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to send $20.00 to Kofi Boateng").Return(false).Once()

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "20"})

	suite.ErrorIs(err, apperrors.ErrReauthDeclined)
	suite.Empty(suite.alerter.All())
	suite.mockAPI.AssertNotCalled(suite.T(), "SendMoney", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "FetchBalance", 1)
}

func (suite *WalletFlowTestSuite) TestSendMoney_Success() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to send $20.00 to Kofi Boateng").Return(true).Once()
	suite.mockAPI.On("SendMoney", suite.ctx, tokenSC, dto.SendMoneyRequest{
		RecipientUserID: 4,
		Amount:          decimal.RequireFromString("20"),
		Note:            "dues",
	}).Return(nil).Once()
	suite.expectRefresh("30")

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "20", Note: " dues "})

	suite.Require().NoError(err)
	suite.Equal("$30.00", domain.FormatCurrency(suite.flow.Balance().Amount))
	suite.Equal("Successfully sent $20.00 to Kofi Boateng", suite.alerter.Last().Message)
	suite.Equal(dto.SendForm{}, suite.flow.Drafts().Send)
}

func (suite *WalletFlowTestSuite) TestSendMoney_ServerRejectionRefreshesOnceAndKeepsDraft() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, mock.Anything).Return(true).Once()
	suite.mockAPI.On("SendMoney", suite.ctx, tokenSC, mock.Anything).
		Return(apperrors.NewServerError(http.StatusBadRequest, "Insufficient balance")).Once()
	suite.expectRefresh("10")

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "20"})

	suite.Equal(apperrors.KindRejected, apperrors.KindOf(err))
	suite.Equal(ports.Alert{Title: "Error", Message: "Insufficient balance"}, suite.alerter.Last())
	suite.Equal("20", suite.flow.Drafts().Send.Amount)
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "FetchBalance", 2)
}

func (suite *WalletFlowTestSuite) TestSendMoney_RefreshFailureAfterCallIsSwallowed() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, mock.Anything).Return(true).Once()
	suite.mockAPI.On("SendMoney", suite.ctx, tokenSC, mock.Anything).Return(nil).Once()
	suite.mockAPI.On("FetchBalance", mock.Anything, tokenSC).Return(decimal.Zero, errors.New("timeout")).Once()
	suite.mockAPI.On("ListTransactions", mock.Anything, tokenSC, "").Return([]domain.Transaction{}, "", nil).Maybe()

	err := suite.flow.SendMoney(suite.ctx, dto.SendForm{Recipient: &kofi, Amount: "20"})

	suite.Require().NoError(err)
	suite.False(suite.flow.Balance().Known)
}

func (suite *WalletFlowTestSuite) TestTopUp_SynthesizesVoucherAndRefreshes() {
	suite.mockAPI.On("TopUp", suite.ctx, tokenSC, dto.TopUpRequest{
		Amount:           decimal.RequireFromString("25"),
		VoucherReference: "SIM_1700000000123",
	}).Return(nil).Once()
	suite.expectRefresh("25")

	err := suite.flow.TopUp(suite.ctx, dto.TopUpForm{Amount: "25"})

	suite.Require().NoError(err)
	suite.Equal("Successfully topped up $25.00", suite.alerter.Last().Message)
	suite.True(suite.flow.Balance().Known)
	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestTopUp_KeepsSuppliedVoucher() {
	suite.mockAPI.On("TopUp", suite.ctx, tokenSC, dto.TopUpRequest{
		Amount:           decimal.RequireFromString("10.50"),
		VoucherReference: "MTN-884",
	}).Return(nil).Once()
	suite.expectRefresh("10.50")

	suite.Require().NoError(suite.flow.TopUp(suite.ctx, dto.TopUpForm{Amount: "10.50", VoucherReference: " MTN-884 "}))
}

func (suite *WalletFlowTestSuite) TestTopUp_InvalidAmountMakesNoCall() {
	err := suite.flow.TopUp(suite.ctx, dto.TopUpForm{Amount: "0"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(ports.Alert{Title: "Invalid Amount", Message: "Please enter a valid amount to top up."}, suite.alerter.Last())
	suite.Equal("0", suite.flow.Drafts().TopUp.Amount)
	suite.mockAPI.AssertNotCalled(suite.T(), "TopUp", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "FetchBalance", mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestTopUp_NetworkFailureUsesGenericMessage() {
	suite.mockAPI.On("TopUp", suite.ctx, tokenSC, mock.Anything).
		Return(apperrors.NewServerError(http.StatusInternalServerError, "")).Once()
	suite.expectRefresh("0")

	err := suite.flow.TopUp(suite.ctx, dto.TopUpForm{Amount: "25"})

	suite.Error(err)
	suite.Equal("Failed to process top-up. Please try again.", suite.alerter.Last().Message)
}

func openFund() *domain.DeceasedFund {
	return &domain.DeceasedFund{
		FundID:            21,
		GroupID:           12,
		Deceased:          domain.MemberRef{ProfileID: 30, UserID: 31, FullName: "Yaw Owusu"},
		TotalRaised:       decimal.NewFromInt(100),
		ContributionsOpen: true,
		Active:            true,
	}
}

func (suite *WalletFlowTestSuite) TestContribute_Success() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to contribute $15.00 to Yaw Owusu's fund").Return(true).Once()
	suite.mockAPI.On("ContributeToDeceased", suite.ctx, tokenSC, dto.ContributeRequest{
		DeceasedID: 21,
		Amount:     decimal.RequireFromString("15"),
	}).Return(&domain.ContributionReceipt{
		ContributionID: 5,
		DeceasedName:   "Yaw Owusu",
		Amount:         decimal.NewFromInt(15),
		TotalRaised:    decimal.NewFromInt(115),
	}, nil).Once()
	suite.expectRefresh("35")
	suite.mockAPI.On("ListFunds", suite.ctx, tokenSC).Return([]domain.DeceasedFund{*openFund()}, nil).Once()

	err := suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: openFund(), Amount: "15"})

	suite.Require().NoError(err)
	suite.Equal(ports.Alert{Title: "Contribution Successful", Message: "You contributed $15.00 to Yaw Owusu's fund.\n\nTotal raised: $115.00"}, suite.alerter.Last())
	suite.Len(suite.flow.Funds(), 1)
	suite.Equal(dto.ContributeForm{}, suite.flow.Drafts().Contribute)
}

func (suite *WalletFlowTestSuite) TestContribute_LocalChecks() {
	suite.loadBalance("10")

	err := suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Amount: "5"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(ports.Alert{Title: "No Selection", Message: "Please select a deceased member to contribute to."}, suite.alerter.Last())

	closed := openFund()
	closed.ContributionsOpen = false
	err = suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: closed, Amount: "5"})
	suite.ErrorIs(err, apperrors.ErrContributionsClosed)

	err = suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: openFund(), Amount: "50"})
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Equal("You do not have enough balance for this contribution.", suite.alerter.Last().Message)

	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "ContributeToDeceased", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestContribute_GateDeclinedMakesNoCall() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to contribute $15.00 to Yaw Owusu's fund").Return(false).Once()

	err := suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: openFund(), Amount: "15"})

	suite.ErrorIs(err, apperrors.ErrReauthDeclined)
	suite.Empty(suite.alerter.All())
	suite.mockAPI.AssertNotCalled(suite.T(), "ContributeToDeceased", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "ListFunds", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "FetchBalance", 1)
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "ListTransactions", 1)
	suite.Equal("15", suite.flow.Drafts().Contribute.Amount)
}

func (suite *WalletFlowTestSuite) TestContribute_FailureDoesNotRefreshFunds() {
	suite.loadBalance("50")
	suite.mockGate.On("Confirm", suite.ctx, mock.Anything).Return(true).Once()
	suite.mockAPI.On("ContributeToDeceased", suite.ctx, tokenSC, mock.Anything).
		Return(nil, apperrors.NewServerError(http.StatusBadRequest, "Contributions are closed for this member")).Once()
	suite.expectRefresh("50")

	err := suite.flow.ContributeToDeceased(suite.ctx, dto.ContributeForm{Fund: openFund(), Amount: "15"})

	suite.Error(err)
	suite.Equal("Contributions are closed for this member", suite.alerter.Last().Message)
	suite.mockAPI.AssertNotCalled(suite.T(), "ListFunds", mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestDisburse_WithoutBeneficiaryRejectedLocally() {
	fund := *openFund()

	_, err := suite.flow.DisburseFund(suite.ctx, fund)

	suite.ErrorIs(err, apperrors.ErrMissingBeneficiary)
	suite.Equal(ports.Alert{Title: "No Beneficiary", Message: "Please assign a beneficiary before disbursing funds."}, suite.alerter.Last())
	suite.mockGate.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "DisburseFund", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestDisburse_AlreadyDisbursedAndEmpty() {
	fund := *openFund()
	fund.Beneficiary = &kofi
	fund.Disbursed = true
	_, err := suite.flow.DisburseFund(suite.ctx, fund)
	suite.ErrorIs(err, apperrors.ErrAlreadyDisbursed)

	fund.Disbursed = false
	fund.TotalDisbursed = fund.TotalRaised
	_, err = suite.flow.DisburseFund(suite.ctx, fund)
	suite.ErrorIs(err, apperrors.ErrNoFunds)
	suite.Equal("No Funds", suite.alerter.Last().Title)
}

func (suite *WalletFlowTestSuite) TestDisburse_GateDeclinedMakesNoCall() {
	fund := *openFund()
	fund.Beneficiary = &kofi
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to disburse $100.00 to Kofi Boateng").Return(false).Once()

	disbursement, err := suite.flow.DisburseFund(suite.ctx, fund)

	suite.ErrorIs(err, apperrors.ErrReauthDeclined)
	suite.Nil(disbursement)
	suite.Empty(suite.alerter.All())
	suite.mockAPI.AssertNotCalled(suite.T(), "DisburseFund", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "ListFunds", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "FetchBalance", mock.Anything, mock.Anything)
	suite.mockAPI.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletFlowTestSuite) TestDisburse_Success() {
	fund := *openFund()
	fund.Beneficiary = &kofi
	suite.mockGate.On("Confirm", suite.ctx, "Authenticate to disburse $100.00 to Kofi Boateng").Return(true).Once()
	suite.mockAPI.On("DisburseFund", suite.ctx, tokenSC, int64(21)).Return(&domain.Disbursement{
		Amount:      decimal.NewFromInt(100),
		Beneficiary: "Kofi Boateng",
	}, nil).Once()
	suite.mockAPI.On("ListFunds", suite.ctx, tokenSC).Return([]domain.DeceasedFund{}, nil).Once()
	suite.expectRefresh("0")

	disbursement, err := suite.flow.DisburseFund(suite.ctx, fund)

	suite.Require().NoError(err)
	suite.True(disbursement.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("Successfully disbursed $100.00 to Kofi Boateng", suite.alerter.Last().Message)
}

func (suite *WalletFlowTestSuite) TestRecipients_DedupesAndFilters() {
	suite.mockAPI.On("ListMyGroups", suite.ctx, tokenSC).Return([]domain.Group{{GroupID: 1}, {GroupID: 2}}, nil).Once()
	suite.mockAPI.On("ListGroupMembers", suite.ctx, tokenSC, int64(1)).Return([]domain.Membership{
		{Member: domain.MemberRef{UserID: 3, FullName: "Ama Mensah"}, Status: domain.MembershipActive},
		{Member: kofi, Status: domain.MembershipActive},
		{Member: domain.MemberRef{UserID: 9, FullName: "Pending Person"}, Status: domain.MembershipPending},
	}, nil).Once()
	suite.mockAPI.On("ListGroupMembers", suite.ctx, tokenSC, int64(2)).Return([]domain.Membership{
		{Member: kofi, Status: domain.MembershipActive},
		{Member: domain.MemberRef{UserID: 5, FullName: "Abena Asante"}, Status: domain.MembershipActive},
		{Member: domain.MemberRef{UserID: 31, FullName: "Yaw Owusu"}, Status: domain.MembershipActive, IsDeceased: true},
	}, nil).Once()

	recipients, err := suite.flow.Recipients(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal([]domain.MemberRef{{UserID: 5, FullName: "Abena Asante"}, kofi}, recipients)
}
