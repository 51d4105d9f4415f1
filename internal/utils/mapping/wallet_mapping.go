package mapping

import (
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/models"
)

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		WalletUserID:     d.WalletUserID,
		TransactionType:  string(d.Type),
		Amount:           d.Amount,
		Status:           string(d.Status),
		CounterpartyID:   d.CounterpartyID,
		DeceasedFundID:   d.DeceasedID,
		GroupID:          d.GroupID,
		VoucherReference: optionalString(d.VoucherReference),
		Reference:        optionalString(d.Reference),
		Note:             optionalString(d.Note),
		Timestamp:        d.Timestamp,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		WalletUserID:     m.WalletUserID,
		Type:             domain.TransactionType(m.TransactionType),
		Amount:           m.Amount,
		Status:           domain.TransactionStatus(m.Status),
		CounterpartyID:   m.CounterpartyID,
		CounterpartyName: derefString(m.CounterpartyName),
		DeceasedID:       m.DeceasedFundID,
		GroupID:          m.GroupID,
		VoucherReference: derefString(m.VoucherReference),
		Reference:        derefString(m.Reference),
		Note:             derefString(m.Note),
		Timestamp:        m.Timestamp,
	}
}

// ToDomainFund converts a model DeceasedFund to a domain DeceasedFund
func ToDomainFund(m models.DeceasedFund) domain.DeceasedFund {
	f := domain.DeceasedFund{
		FundID:    m.FundID,
		GroupID:   m.GroupID,
		GroupName: m.GroupName,
		Deceased: domain.MemberRef{
			ProfileID: m.DeceasedProfileID,
			UserID:    m.DeceasedUserID,
			FullName:  m.DeceasedName,
		},
		TotalRaised:       m.TotalRaised,
		TotalDisbursed:    m.TotalDisbursed,
		ContributionsOpen: m.ContributionsOpen,
		Active:            m.IsActive,
		Disbursed:         m.FundsDisbursed,
		Date:              m.Date,
	}
	if m.BeneficiaryProfileID != nil {
		ref := domain.MemberRef{ProfileID: *m.BeneficiaryProfileID, FullName: derefString(m.BeneficiaryName)}
		if m.BeneficiaryUserID != nil {
			ref.UserID = *m.BeneficiaryUserID
		}
		f.Beneficiary = &ref
	}
	return f
}

// ToModelContribution converts a domain Contribution to a model Contribution
func ToModelContribution(d domain.Contribution) models.Contribution {
	return models.Contribution{
		ContributionID:       d.ContributionID,
		FundID:               d.FundID,
		GroupID:              d.GroupID,
		ContributorProfileID: d.ContributorID,
		Amount:               d.Amount,
		PaymentMethod:        d.PaymentMethod,
		TransactionID:        d.TransactionID,
		Date:                 d.Date,
	}
}
