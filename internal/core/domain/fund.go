package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DeceasedFund is the memorial contribution pool for a deceased group member.
type DeceasedFund struct {
	FundID            int64           `json:"fundID"`
	GroupID           int64           `json:"groupID"`
	GroupName         string          `json:"groupName,omitempty"`
	Deceased          MemberRef       `json:"deceased"`
	Beneficiary       *MemberRef      `json:"beneficiary,omitempty"`
	TotalRaised       decimal.Decimal `json:"totalRaised"`
	TotalDisbursed    decimal.Decimal `json:"totalDisbursed"`
	ContributionsOpen bool            `json:"contributionsOpen"`
	Active            bool            `json:"active"`
	Disbursed         bool            `json:"disbursed"`
	Date              time.Time       `json:"date"`
}

// Balance is raised minus disbursed, floored at zero.
func (f DeceasedFund) Balance() decimal.Decimal {
	balance := f.TotalRaised.Sub(f.TotalDisbursed)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// AcceptsContributions reports whether members may still contribute.
func (f DeceasedFund) AcceptsContributions() bool {
	return f.Active && f.ContributionsOpen && !f.Disbursed
}

// CanDisburse checks the local disbursement preconditions.
func (f DeceasedFund) CanDisburse() error {
	if f.Beneficiary == nil || f.Beneficiary.ProfileID == 0 {
		return fmt.Errorf("fund %d: %w", f.FundID, apperrors.ErrMissingBeneficiary)
	}
	if f.Disbursed {
		return fmt.Errorf("fund %d: %w", f.FundID, apperrors.ErrAlreadyDisbursed)
	}
	if !f.Balance().IsPositive() {
		return fmt.Errorf("fund %d: %w", f.FundID, apperrors.ErrNoFunds)
	}
	return nil
}

// Contribution records one member's payment into a fund.
type Contribution struct {
	ContributionID int64           `json:"contributionID"`
	FundID         int64           `json:"fundID"`
	GroupID        int64           `json:"groupID"`
	ContributorID  int64           `json:"contributorID"` // Profile ID
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	TransactionID  *int64          `json:"transactionID,omitempty"`
	Date           time.Time       `json:"date"`
}

// ContributionReceipt is what the backend reports after a contribution.
type ContributionReceipt struct {
	ContributionID int64           `json:"contributionID"`
	DeceasedName   string          `json:"deceasedName"`
	Amount         decimal.Decimal `json:"amount"`
	TotalRaised    decimal.Decimal `json:"totalRaised"`
}

// Disbursement is what the backend reports after paying out a fund.
type Disbursement struct {
	Amount      decimal.Decimal `json:"amount"`
	Beneficiary string          `json:"beneficiary"`
	Transaction Transaction     `json:"transaction"`
}
