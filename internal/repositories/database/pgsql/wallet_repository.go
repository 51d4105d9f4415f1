package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/SscSPs/komunity_app/internal/models"
	"github.com/SscSPs/komunity_app/internal/utils/mapping"
	"github.com/SscSPs/komunity_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const transactionColumns = `transaction_id, wallet_user_id, transaction_type, amount, status,
	counterparty_user_id, deceased_fund_id, group_id, voucher_reference, reference, note, timestamp`

func scanTransaction(row pgx.Row, withCounterpartyName bool) (models.Transaction, error) {
	var m models.Transaction
	dest := []any{
		&m.TransactionID,
		&m.WalletUserID,
		&m.TransactionType,
		&m.Amount,
		&m.Status,
		&m.CounterpartyID,
		&m.DeceasedFundID,
		&m.GroupID,
		&m.VoucherReference,
		&m.Reference,
		&m.Note,
		&m.Timestamp,
	}
	if withCounterpartyName {
		dest = append(dest, &m.CounterpartyName)
	}
	err := row.Scan(dest...)
	return m, err
}

// insertTransaction writes txn using tx and returns the stored row.
func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO wallet_transactions (
			wallet_user_id, transaction_type, amount, status, counterparty_user_id,
			deceased_fund_id, group_id, voucher_reference, reference, note, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + transactionColumns + `;
	`
	saved, err := scanTransaction(tx.QueryRow(ctx, query,
		m.WalletUserID,
		m.TransactionType,
		m.Amount,
		m.Status,
		m.CounterpartyID,
		m.DeceasedFundID,
		m.GroupID,
		m.VoucherReference,
		m.Reference,
		m.Note,
		m.Timestamp,
	), false)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s transaction for user %d: %w", m.TransactionType, m.WalletUserID, err)
	}
	domainTxn := mapping.ToDomainTransaction(saved)
	return &domainTxn, nil
}

// debitWallet locks the wallet of debit.WalletUserID, checks it covers the
// amount and records the debit.
func debitWallet(ctx context.Context, tx pgx.Tx, debit domain.Transaction) (*domain.Transaction, error) {
	if err := lockWallet(ctx, tx, debit.WalletUserID); err != nil {
		return nil, err
	}
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, debit.WalletUserID).Scan(&balance); err != nil {
		return nil, fmt.Errorf("failed to compute balance of user %d: %w", debit.WalletUserID, err)
	}
	if balance.LessThan(debit.Amount) {
		return nil, fmt.Errorf("wallet of user %d holds %s: %w", debit.WalletUserID, balance.StringFixed(2), apperrors.ErrInsufficientFunds)
	}
	return insertTransaction(ctx, tx, debit)
}

func (r *PgxWalletRepository) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, balanceQuery, userID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance of user %d: %w", userID, err)
	}
	return balance, nil
}

// ListTransactions pages through a wallet's history using a (timestamp, id) cursor.
func (r *PgxWalletRepository) ListTransactions(ctx context.Context, userID int64, limit int, pageToken string) ([]domain.Transaction, string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT t.transaction_id, t.wallet_user_id, t.transaction_type, t.amount, t.status,
			t.counterparty_user_id, t.deceased_fund_id, t.group_id, t.voucher_reference, t.reference, t.note, t.timestamp,
			NULLIF(TRIM(p.first_name || ' ' || p.surname), '') AS counterparty_name
		FROM wallet_transactions t
		LEFT JOIN profiles p ON p.user_id = t.counterparty_user_id
		WHERE t.wallet_user_id = $1
	`
	args := []any{userID}
	if pageToken != "" {
		cursor, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid page token: %v", apperrors.ErrValidation, err)
		}
		baseQuery += ` AND (t.timestamp, t.transaction_id) < ($2, $3)`
		args = append(args, cursor.Timestamp, cursor.ID)
	}
	query := baseQuery + ` ORDER BY t.timestamp DESC, t.transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query transactions of user %d: %w", userID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows, true)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating transaction rows: %w", err)
	}

	nextToken := ""
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		nextToken = pagination.EncodeToken(pagination.Cursor{Timestamp: last.Timestamp, ID: last.TransactionID})
		modelTxns = modelTxns[:limit]
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, nextToken, nil
}

func (r *PgxWalletRepository) SaveCredit(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	var saved *domain.Transaction
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, err = insertTransaction(ctx, tx, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveTransfer records both legs of a peer-to-peer transfer, checking the
// sender's balance under its wallet lock.
func (r *PgxWalletRepository) SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.Transaction, error) {
	var saved *domain.Transaction
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, err = debitWallet(ctx, tx, debit)
		if err != nil {
			return err
		}
		_, err = insertTransaction(ctx, tx, credit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
