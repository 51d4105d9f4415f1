package dto

import (
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NextPageTokenHeader carries the cursor of the next transactions page.
const NextPageTokenHeader = "X-Next-Page-Token"

// BalanceResponse is the body of GET wallets/balance/.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// TopUpRequest is the body of POST wallets/top_up/.
type TopUpRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	VoucherReference string          `json:"voucher_reference" binding:"max=100"`
}

// SendMoneyRequest is the body of POST wallets/send_money/.
type SendMoneyRequest struct {
	RecipientUserID int64           `json:"recipient_user_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note,omitempty" binding:"max=255"`
}

// ContributeRequest is the body of POST wallets/contribute_to_deceased/.
type ContributeRequest struct {
	DeceasedID int64           `json:"deceased_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

// ListTransactionsParams are the query parameters of GET transactions/.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	PageToken string `form:"page_token"`
}

// WalletParty names the owner of one side of a transaction.
type WalletParty struct {
	UserID    int64  `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`
	FullName  string `json:"full_name"`
}

// TransactionResponse is the wire shape of a wallet transaction.
type TransactionResponse struct {
	ID                    int64           `json:"id"`
	TransactionType       string          `json:"transaction_type"`
	Amount                decimal.Decimal `json:"amount"`
	Status                string          `json:"status"`
	DestinationGroup      *int64          `json:"destination_group"`
	RecipientWalletDetail *WalletParty    `json:"recipient_wallet_detail"`
	WalletDetail          WalletParty     `json:"wallet_detail"`
	DeceasedContribution  *int64          `json:"deceased_contribution"`
	VoucherReference      *string         `json:"voucher_reference"`
	WaasReferenceID       *string         `json:"waas_reference_id"`
	Note                  string          `json:"note,omitempty"`
	Timestamp             time.Time       `json:"timestamp"`
}

// ContributionResponse summarises a contribution after it is recorded.
type ContributionResponse struct {
	ID          int64           `json:"id"`
	Deceased    string          `json:"deceased"`
	Amount      decimal.Decimal `json:"amount"`
	TotalRaised decimal.Decimal `json:"total_raised"`
}

// WalletOperationResponse is returned by every mutating wallet endpoint.
type WalletOperationResponse struct {
	Status       string                `json:"status"`
	Balance      decimal.Decimal       `json:"balance"`
	Transaction  TransactionResponse   `json:"transaction"`
	Recipient    string                `json:"recipient,omitempty"`
	Contribution *ContributionResponse `json:"contribution,omitempty"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToTransactionResponse converts a domain.Transaction. owner describes the wallet it belongs to.
func ToTransactionResponse(t domain.Transaction, owner WalletParty) TransactionResponse {
	res := TransactionResponse{
		ID:                   t.TransactionID,
		TransactionType:      string(t.Type),
		Amount:               t.Amount,
		Status:               string(t.Status),
		DestinationGroup:     t.GroupID,
		WalletDetail:         owner,
		DeceasedContribution: t.DeceasedID,
		VoucherReference:     optionalString(t.VoucherReference),
		WaasReferenceID:      optionalString(t.Reference),
		Note:                 t.Note,
		Timestamp:            t.Timestamp,
	}
	if t.CounterpartyID != nil {
		res.RecipientWalletDetail = &WalletParty{UserID: *t.CounterpartyID, FullName: t.CounterpartyName}
	}
	return res
}

// ToDomain converts the wire shape back into a domain.Transaction.
func (r TransactionResponse) ToDomain() domain.Transaction {
	t := domain.Transaction{
		TransactionID: r.ID,
		WalletUserID:  r.WalletDetail.UserID,
		Type:          domain.TransactionType(r.TransactionType),
		Amount:        r.Amount,
		Status:        domain.TransactionStatus(r.Status),
		GroupID:       r.DestinationGroup,
		DeceasedID:    r.DeceasedContribution,
		Note:          r.Note,
		Timestamp:     r.Timestamp,
	}
	if r.RecipientWalletDetail != nil {
		id := r.RecipientWalletDetail.UserID
		t.CounterpartyID = &id
		t.CounterpartyName = r.RecipientWalletDetail.FullName
	}
	if r.VoucherReference != nil {
		t.VoucherReference = *r.VoucherReference
	}
	if r.WaasReferenceID != nil {
		t.Reference = *r.WaasReferenceID
	}
	return t
}

// ToDomainTransactions converts a page of transactions.
func ToDomainTransactions(res []TransactionResponse) []domain.Transaction {
	txns := make([]domain.Transaction, len(res))
	for i, r := range res {
		txns[i] = r.ToDomain()
	}
	return txns
}

// TopUpForm is the top-up draft as typed by the user.
type TopUpForm struct {
	Amount           string
	VoucherReference string
}

// SendForm is the send-money draft. Recipient is nil until one is picked.
type SendForm struct {
	Recipient *domain.MemberRef
	Amount    string
	Note      string
}

// ContributeForm is the contribution draft. Fund is nil until one is picked.
type ContributeForm struct {
	Fund   *domain.DeceasedFund
	Amount string
}

// WalletDrafts holds the forms retained between attempts.
type WalletDrafts struct {
	TopUp      TopUpForm
	Send       SendForm
	Contribute ContributeForm
}
