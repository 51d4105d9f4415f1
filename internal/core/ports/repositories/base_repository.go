package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxRunner runs multi-row writes atomically. Transfers, contributions and
// disbursements each touch more than one wallet or table and go through it.
type TxRunner interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
