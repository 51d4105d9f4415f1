package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the pool shared by the Postgres repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TxRunner = (*BaseRepository)(nil)

func (r *BaseRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit returns ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockWallet serializes balance-changing writes for userID until tx ends.
func lockWallet(ctx context.Context, tx pgx.Tx, userID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return fmt.Errorf("failed to lock wallet of user %d: %w", userID, err)
	}
	return nil
}

// balanceQuery sums the completed transactions of a wallet, signed by direction.
const balanceQuery = `
	SELECT COALESCE(SUM(CASE
		WHEN transaction_type IN ('TOP_UP', 'PAYOUT_RECEIVED', 'P2P_RECEIVED') THEN amount
		ELSE -amount
	END), 0)
	FROM wallet_transactions
	WHERE wallet_user_id = $1 AND status = 'COMPLETED';
`

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
