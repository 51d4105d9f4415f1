package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a wallet movement.
type TransactionType string

const (
	TopUp          TransactionType = "TOP_UP"
	Transfer       TransactionType = "TRANSFER"
	Withdrawal     TransactionType = "WITHDRAWAL"
	PayoutReceived TransactionType = "PAYOUT_RECEIVED"
	P2PSent        TransactionType = "P2P_SENT"
	P2PReceived    TransactionType = "P2P_RECEIVED"
)

// IsIncoming reports whether the type credits the wallet it is recorded against.
func (t TransactionType) IsIncoming() bool {
	switch t {
	case TopUp, PayoutReceived, P2PReceived:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TopUp, Transfer, Withdrawal, PayoutReceived, P2PSent, P2PReceived:
		return true
	default:
		return false
	}
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable entry in a wallet's history.
type Transaction struct {
	TransactionID    int64             `json:"transactionID"`
	WalletUserID     int64             `json:"walletUserID"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"` // Always positive; direction comes from Type
	Status           TransactionStatus `json:"status"`
	CounterpartyID   *int64            `json:"counterpartyID,omitempty"`
	CounterpartyName string            `json:"counterpartyName,omitempty"`
	DeceasedID       *int64            `json:"deceasedID,omitempty"`
	GroupID          *int64            `json:"groupID,omitempty"`
	VoucherReference string            `json:"voucherReference,omitempty"`
	Reference        string            `json:"reference,omitempty"`
	Note             string            `json:"note,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

// SignedAmount returns the amount with the sign it contributes to the wallet balance.
// Only completed transactions count.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Status != StatusCompleted {
		return decimal.Zero
	}
	if t.Type.IsIncoming() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// BalanceOf sums the signed amounts of txns.
func BalanceOf(txns []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount())
	}
	return sum
}
