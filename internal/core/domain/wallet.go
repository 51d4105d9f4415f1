package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// WalletBalance is the last balance fetched from the backend.
type WalletBalance struct {
	Amount decimal.Decimal `json:"amount"`
	Known  bool            `json:"known"`
}

// Covers reports whether the known balance is at least amount.
// An unknown balance covers nothing.
func (b WalletBalance) Covers(amount decimal.Decimal) bool {
	return b.Known && b.Amount.GreaterThanOrEqual(amount)
}

// MoneyPlaces is the number of fractional digits an amount may carry.
const MoneyPlaces = 2

// ParseAmount parses user input into a strictly positive amount with at
// most MoneyPlaces fractional digits. Exponent notation is refused.
func ParseAmount(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	if strings.ContainsAny(trimmed, "eE") {
		return decimal.Zero, fmt.Errorf("invalid amount format %q", input)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format %q", input)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	if !amount.Equal(amount.Truncate(MoneyPlaces)) {
		return decimal.Zero, fmt.Errorf("amount cannot have more than %d decimal places", MoneyPlaces)
	}
	return amount, nil
}

// FormatCurrency renders an amount the way the app displays money, e.g. "$1,250.00".
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%s", sign, grouped.String(), frac)
}

// WalletOperation is the outcome of a mutating wallet call on the backend.
type WalletOperation struct {
	Balance     decimal.Decimal      `json:"balance"`
	Transaction Transaction          `json:"transaction"`
	Recipient   string               `json:"recipient,omitempty"`
	Receipt     *ContributionReceipt `json:"receipt,omitempty"`
}
