package dto

import (
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DeceasedResponse is the wire shape of a deceased member's memorial fund.
type DeceasedResponse struct {
	ID                int64            `json:"id"`
	Deceased          int64            `json:"deceased"`
	DeceasedDetail    ProfileResponse  `json:"deceased_detail"`
	Group             int64            `json:"group"`
	GroupName         string           `json:"group_name"`
	Date              time.Time        `json:"date"`
	ContributionsOpen bool             `json:"contributions_open"`
	ContIsActive      bool             `json:"cont_is_active"`
	TotalRaised       decimal.Decimal  `json:"total_raised"`
	Beneficiary       *int64           `json:"beneficiary"`
	BeneficiaryDetail *ProfileResponse `json:"beneficiary_detail"`
	FundsDisbursed    bool             `json:"funds_disbursed"`
	TotalDisbursed    decimal.Decimal  `json:"total_disbursed"`
	Balance           decimal.Decimal  `json:"balance"`
}

// DisbursementResponse is the body of POST deceased/{id}/disburse_funds/.
type DisbursementResponse struct {
	Status      string              `json:"status"`
	Amount      decimal.Decimal     `json:"amount"`
	Beneficiary string              `json:"beneficiary"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToDeceasedResponse converts a domain.DeceasedFund.
func ToDeceasedResponse(f domain.DeceasedFund) DeceasedResponse {
	res := DeceasedResponse{
		ID:                f.FundID,
		Deceased:          f.Deceased.ProfileID,
		DeceasedDetail:    profileFromRef(f.Deceased),
		Group:             f.GroupID,
		GroupName:         f.GroupName,
		Date:              f.Date,
		ContributionsOpen: f.ContributionsOpen,
		ContIsActive:      f.Active,
		TotalRaised:       f.TotalRaised,
		FundsDisbursed:    f.Disbursed,
		TotalDisbursed:    f.TotalDisbursed,
		Balance:           f.Balance(),
	}
	if f.Beneficiary != nil {
		id := f.Beneficiary.ProfileID
		detail := profileFromRef(*f.Beneficiary)
		res.Beneficiary = &id
		res.BeneficiaryDetail = &detail
	}
	return res
}

// ToListDeceasedResponse converts a slice of domain.DeceasedFund.
func ToListDeceasedResponse(funds []domain.DeceasedFund) []DeceasedResponse {
	res := make([]DeceasedResponse, len(funds))
	for i, f := range funds {
		res[i] = ToDeceasedResponse(f)
	}
	return res
}

// ToDomain converts the wire shape back into a domain.DeceasedFund.
func (r DeceasedResponse) ToDomain() domain.DeceasedFund {
	f := domain.DeceasedFund{
		FundID:            r.ID,
		GroupID:           r.Group,
		GroupName:         r.GroupName,
		Deceased:          r.DeceasedDetail.MemberRef(),
		TotalRaised:       r.TotalRaised,
		TotalDisbursed:    r.TotalDisbursed,
		ContributionsOpen: r.ContributionsOpen,
		Active:            r.ContIsActive,
		Disbursed:         r.FundsDisbursed,
		Date:              r.Date,
	}
	if r.BeneficiaryDetail != nil {
		ref := r.BeneficiaryDetail.MemberRef()
		f.Beneficiary = &ref
	} else if r.Beneficiary != nil {
		f.Beneficiary = &domain.MemberRef{ProfileID: *r.Beneficiary}
	}
	return f
}

// ToDomainFunds converts a list of funds.
func ToDomainFunds(res []DeceasedResponse) []domain.DeceasedFund {
	funds := make([]domain.DeceasedFund, len(res))
	for i, r := range res {
		funds[i] = r.ToDomain()
	}
	return funds
}
