package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletService applies the server-side wallet rules. The balance check of
// every debit happens in the repository under the wallet lock.
type walletService struct {
	BaseService
	walletRepo    portsrepo.WalletRepositoryFacade
	userRepo      portsrepo.UserReader
	profileRepo   portsrepo.ProfileRepositoryFacade
	fundRepo      portsrepo.FundRepositoryFacade
	communityRepo portsrepo.GroupReader
}

func NewWalletService(repos portsrepo.RepositoryProvider) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:    repos.WalletRepo,
		userRepo:      repos.UserRepo,
		profileRepo:   repos.ProfileRepo,
		fundRepo:      repos.FundRepo,
		communityRepo: repos.CommunityRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func amountNotPositive() error {
	return apperrors.WithDetail(apperrors.ErrValidation, "Amount must be positive")
}

func insufficientBalance(err error) error {
	return apperrors.WithDetail(err, "Insufficient balance")
}

func (s *walletService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance of user %d: %w", userID, err)
	}
	return balance, nil
}

func (s *walletService) ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	txns, next, err := s.walletRepo.ListTransactions(ctx, userID, params.Limit, params.PageToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions of user %d: %w", userID, err)
	}
	return txns, next, nil
}

// operation completes a mutating call with the wallet's new balance.
func (s *walletService) operation(ctx context.Context, userID int64, txn *domain.Transaction) (*domain.WalletOperation, error) {
	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance after transaction %d: %w", txn.TransactionID, err)
	}
	return &domain.WalletOperation{Balance: balance, Transaction: *txn}, nil
}

// TopUp credits the wallet. Payments are simulated, so the voucher is recorded as given.
func (s *walletService) TopUp(ctx context.Context, userID int64, req dto.TopUpRequest) (*domain.WalletOperation, error) {
	if !req.Amount.IsPositive() {
		return nil, amountNotPositive()
	}

	txn, err := s.walletRepo.SaveCredit(ctx, domain.Transaction{
		WalletUserID:     userID,
		Type:             domain.TopUp,
		Amount:           req.Amount,
		Status:           domain.StatusCompleted,
		VoucherReference: strings.TrimSpace(req.VoucherReference),
		Reference:        uuid.NewString(),
		Timestamp:        time.Now().UTC(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record top-up", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to top up: %w", err)
	}

	s.LogInfo(ctx, "Wallet topped up", slog.Int64("user_id", userID), slog.String("amount", req.Amount.String()))
	return s.operation(ctx, userID, txn)
}

// displayName is the profile name of userID, or fallback when it has none.
func (s *walletService) displayName(ctx context.Context, userID int64, fallback string) string {
	profile, err := s.profileRepo.FindProfileByUserID(ctx, userID)
	if err != nil || profile.FullName() == "" {
		return fallback
	}
	return profile.FullName()
}

func (s *walletService) SendMoney(ctx context.Context, userID int64, req dto.SendMoneyRequest) (*domain.WalletOperation, error) {
	if !req.Amount.IsPositive() {
		return nil, amountNotPositive()
	}
	if req.RecipientUserID == userID {
		return nil, apperrors.WithDetail(apperrors.ErrValidation, "Cannot send money to yourself")
	}

	recipient, err := s.userRepo.FindUserByID(ctx, req.RecipientUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithDetail(err, "Recipient not found")
		}
		return nil, fmt.Errorf("failed to look up recipient %d: %w", req.RecipientUserID, err)
	}

	now := time.Now().UTC()
	reference := uuid.NewString()
	sender, receiver := userID, recipient.UserID
	debit := domain.Transaction{
		WalletUserID:   sender,
		Type:           domain.P2PSent,
		Amount:         req.Amount,
		Status:         domain.StatusCompleted,
		CounterpartyID: &receiver,
		Reference:      reference,
		Note:           strings.TrimSpace(req.Note),
		Timestamp:      now,
	}
	credit := debit
	credit.WalletUserID = receiver
	credit.Type = domain.P2PReceived
	credit.CounterpartyID = &sender

	txn, err := s.walletRepo.SaveTransfer(ctx, debit, credit)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Transfer refused for insufficient balance", slog.Int64("user_id", userID))
			return nil, insufficientBalance(err)
		}
		s.LogError(ctx, err, "Failed to record transfer", slog.Int64("user_id", userID), slog.Int64("recipient_id", receiver))
		return nil, fmt.Errorf("failed to send money: %w", err)
	}

	op, err := s.operation(ctx, userID, txn)
	if err != nil {
		return nil, err
	}
	op.Recipient = s.displayName(ctx, receiver, recipient.Email)
	op.Transaction.CounterpartyName = op.Recipient
	s.LogInfo(ctx, "Money sent", slog.Int64("user_id", userID), slog.Int64("recipient_id", receiver), slog.String("amount", req.Amount.String()))
	return op, nil
}

func (s *walletService) ContributeToDeceased(ctx context.Context, userID int64, req dto.ContributeRequest) (*domain.WalletOperation, error) {
	if !req.Amount.IsPositive() {
		return nil, amountNotPositive()
	}

	fund, err := s.fundRepo.FindFundByID(ctx, req.DeceasedID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithDetail(err, "Deceased member not found")
		}
		return nil, fmt.Errorf("failed to look up fund %d: %w", req.DeceasedID, err)
	}
	if !fund.AcceptsContributions() {
		return nil, apperrors.WithDetail(apperrors.ErrContributionsClosed, "Contributions are closed for this member")
	}

	membership, err := s.communityRepo.FindMembership(ctx, fund.GroupID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership in group %d: %w", fund.GroupID, err)
	}
	if membership == nil || membership.Status != domain.MembershipActive {
		return nil, apperrors.WithDetail(apperrors.ErrForbidden, "You are not a member of this group.")
	}

	now := time.Now().UTC()
	fundID, groupID := fund.FundID, fund.GroupID
	debit := domain.Transaction{
		WalletUserID: userID,
		Type:         domain.Transfer,
		Amount:       req.Amount,
		Status:       domain.StatusCompleted,
		DeceasedID:   &fundID,
		GroupID:      &groupID,
		Reference:    uuid.NewString(),
		Timestamp:    now,
	}
	contribution := domain.Contribution{
		FundID:        fundID,
		GroupID:       groupID,
		ContributorID: membership.Member.ProfileID,
		Amount:        req.Amount,
		PaymentMethod: "wallet",
		Date:          now,
	}

	stored, txn, totalRaised, err := s.fundRepo.SaveContribution(ctx, debit, contribution)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			return nil, insufficientBalance(err)
		case errors.Is(err, apperrors.ErrContributionsClosed):
			return nil, apperrors.WithDetail(err, "Contributions are closed for this member")
		}
		s.LogError(ctx, err, "Failed to record contribution", slog.Int64("user_id", userID), slog.Int64("fund_id", fundID))
		return nil, fmt.Errorf("failed to contribute: %w", err)
	}

	op, err := s.operation(ctx, userID, txn)
	if err != nil {
		return nil, err
	}
	op.Receipt = &domain.ContributionReceipt{
		ContributionID: stored.ContributionID,
		DeceasedName:   fund.Deceased.FullName,
		Amount:         req.Amount,
		TotalRaised:    totalRaised,
	}
	s.LogInfo(ctx, "Contribution recorded", slog.Int64("user_id", userID), slog.Int64("fund_id", fundID),
		slog.Int64("contribution_id", stored.ContributionID), slog.String("amount", req.Amount.String()))
	return op, nil
}
