package repositories

import (
	"context"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallets
type WalletReader interface {
	// Balance sums the completed transactions of userID's wallet.
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)

	// ListTransactions returns up to limit transactions newest first, and the
	// token of the next page ("" on the last page).
	ListTransactions(ctx context.Context, userID int64, limit int, pageToken string) ([]domain.Transaction, string, error)
}

// WalletWriter defines write operations for wallets
type WalletWriter interface {
	// SaveCredit records an incoming transaction.
	SaveCredit(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// SaveTransfer records debit and credit atomically. It returns
	// apperrors.ErrInsufficientFunds when the debited wallet cannot cover the amount.
	SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.Transaction, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}

// FundReader defines read operations for memorial funds
type FundReader interface {
	// FindFundByID retrieves a fund with its raised and disbursed totals.
	FindFundByID(ctx context.Context, fundID int64) (*domain.DeceasedFund, error)

	// FindFundsForMember lists the funds of every group userID is an active member of.
	FindFundsForMember(ctx context.Context, userID int64) ([]domain.DeceasedFund, error)
}

// FundWriter defines write operations for memorial funds
type FundWriter interface {
	// SaveContribution debits the contributor and records the contribution atomically.
	// It returns apperrors.ErrInsufficientFunds or apperrors.ErrContributionsClosed
	// when the state checked under lock forbids it. On success it returns the stored
	// contribution with its ID, the debit and the fund's new total raised.
	SaveContribution(ctx context.Context, debit domain.Transaction, contribution domain.Contribution) (*domain.Contribution, *domain.Transaction, decimal.Decimal, error)

	// MarkDisbursed credits the beneficiary and closes the fund atomically.
	// It returns apperrors.ErrAlreadyDisbursed when the fund was disbursed meanwhile.
	MarkDisbursed(ctx context.Context, fundID int64, payout domain.Transaction) (*domain.Transaction, error)
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}
