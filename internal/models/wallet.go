package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the wallet_transactions table.
type Transaction struct {
	TransactionID    int64           `db:"transaction_id"`
	WalletUserID     int64           `db:"wallet_user_id"`
	TransactionType  string          `db:"transaction_type"`
	Amount           decimal.Decimal `db:"amount"`
	Status           string          `db:"status"`
	CounterpartyID   *int64          `db:"counterparty_user_id"`
	CounterpartyName *string         `db:"counterparty_name"` // Computed
	DeceasedFundID   *int64          `db:"deceased_fund_id"`
	GroupID          *int64          `db:"group_id"`
	VoucherReference *string         `db:"voucher_reference"`
	Reference        *string         `db:"reference"`
	Note             *string         `db:"note"`
	Timestamp        time.Time       `db:"timestamp"`
}

// DeceasedFund is a row of deceased_funds joined with the people it names.
type DeceasedFund struct {
	FundID               int64           `db:"fund_id"`
	GroupID              int64           `db:"group_id"`
	GroupName            string          `db:"group_name"`
	DeceasedProfileID    int64           `db:"deceased_profile_id"`
	DeceasedUserID       int64           `db:"deceased_user_id"`
	DeceasedName         string          `db:"deceased_name"`
	BeneficiaryProfileID *int64          `db:"beneficiary_profile_id"`
	BeneficiaryUserID    *int64          `db:"beneficiary_user_id"`
	BeneficiaryName      *string         `db:"beneficiary_name"`
	TotalRaised          decimal.Decimal `db:"total_raised"` // Computed
	TotalDisbursed       decimal.Decimal `db:"total_disbursed"`
	ContributionsOpen    bool            `db:"contributions_open"`
	IsActive             bool            `db:"is_active"`
	FundsDisbursed       bool            `db:"funds_disbursed"`
	Date                 time.Time       `db:"date"`
}

// Contribution is a row of the contributions table.
type Contribution struct {
	ContributionID       int64           `db:"contribution_id"`
	FundID               int64           `db:"fund_id"`
	GroupID              int64           `db:"group_id"`
	ContributorProfileID int64           `db:"contributor_profile_id"`
	Amount               decimal.Decimal `db:"amount"`
	PaymentMethod        string          `db:"payment_method"`
	TransactionID        *int64          `db:"transaction_id"`
	Date                 time.Time       `db:"date"`
}
