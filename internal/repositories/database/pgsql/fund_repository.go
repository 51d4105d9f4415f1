package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/SscSPs/komunity_app/internal/models"
	"github.com/SscSPs/komunity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFundRepository struct {
	BaseRepository
}

func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

const fundSelect = `
	SELECT f.fund_id, f.group_id, g.name,
		f.deceased_profile_id, dp.user_id, TRIM(dp.first_name || ' ' || dp.surname),
		f.beneficiary_profile_id, bp.user_id, TRIM(bp.first_name || ' ' || bp.surname),
		COALESCE((SELECT SUM(c.amount) FROM contributions c WHERE c.fund_id = f.fund_id), 0) AS total_raised,
		f.total_disbursed, f.contributions_open, f.is_active, f.funds_disbursed, f.date
	FROM deceased_funds f
	JOIN groups g ON g.group_id = f.group_id
	JOIN profiles dp ON dp.profile_id = f.deceased_profile_id
	LEFT JOIN profiles bp ON bp.profile_id = f.beneficiary_profile_id
`

func scanFund(row pgx.Row) (models.DeceasedFund, error) {
	var m models.DeceasedFund
	err := row.Scan(
		&m.FundID,
		&m.GroupID,
		&m.GroupName,
		&m.DeceasedProfileID,
		&m.DeceasedUserID,
		&m.DeceasedName,
		&m.BeneficiaryProfileID,
		&m.BeneficiaryUserID,
		&m.BeneficiaryName,
		&m.TotalRaised,
		&m.TotalDisbursed,
		&m.ContributionsOpen,
		&m.IsActive,
		&m.FundsDisbursed,
		&m.Date,
	)
	return m, err
}

func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID int64) (*domain.DeceasedFund, error) {
	modelFund, err := scanFund(r.Pool.QueryRow(ctx, fundSelect+` WHERE f.fund_id = $1;`, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund %d: %w", fundID, err)
	}
	domainFund := mapping.ToDomainFund(modelFund)
	return &domainFund, nil
}

func (r *PgxFundRepository) FindFundsForMember(ctx context.Context, userID int64) ([]domain.DeceasedFund, error) {
	query := fundSelect + `
		WHERE f.group_id IN (
			SELECT m.group_id FROM group_memberships m WHERE m.user_id = $1 AND m.status = 'active'
		)
		ORDER BY f.date DESC, f.fund_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query funds for user %d: %w", userID, err)
	}
	defer rows.Close()

	funds := []domain.DeceasedFund{}
	for rows.Next() {
		modelFund, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		funds = append(funds, mapping.ToDomainFund(modelFund))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund rows: %w", err)
	}
	return funds, nil
}

// lockFund takes a row lock on the fund and returns its flags.
func lockFund(ctx context.Context, tx pgx.Tx, fundID int64) (models.DeceasedFund, error) {
	var m models.DeceasedFund
	err := tx.QueryRow(ctx, `
		SELECT fund_id, contributions_open, is_active, funds_disbursed
		FROM deceased_funds
		WHERE fund_id = $1
		FOR UPDATE;
	`, fundID).Scan(&m.FundID, &m.ContributionsOpen, &m.IsActive, &m.FundsDisbursed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, fmt.Errorf("fund %d: %w", fundID, apperrors.ErrNotFound)
		}
		return m, fmt.Errorf("failed to lock fund %d: %w", fundID, err)
	}
	return m, nil
}

// SaveContribution debits the contributor and records the contribution in one transaction.
func (r *PgxFundRepository) SaveContribution(ctx context.Context, debit domain.Transaction, contribution domain.Contribution) (*domain.Contribution, *domain.Transaction, decimal.Decimal, error) {
	var (
		saved       *domain.Transaction
		totalRaised decimal.Decimal
	)
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		fund, err := lockFund(ctx, tx, contribution.FundID)
		if err != nil {
			return err
		}
		if !fund.IsActive || !fund.ContributionsOpen || fund.FundsDisbursed {
			return fmt.Errorf("fund %d: %w", fund.FundID, apperrors.ErrContributionsClosed)
		}

		saved, err = debitWallet(ctx, tx, debit)
		if err != nil {
			return err
		}

		m := mapping.ToModelContribution(contribution)
		m.TransactionID = &saved.TransactionID
		err = tx.QueryRow(ctx, `
			INSERT INTO contributions (fund_id, group_id, contributor_profile_id, amount, payment_method, transaction_id, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING contribution_id;
		`, m.FundID, m.GroupID, m.ContributorProfileID, m.Amount, m.PaymentMethod, m.TransactionID, m.Date).Scan(&contribution.ContributionID)
		if err != nil {
			return fmt.Errorf("failed to insert contribution to fund %d: %w", m.FundID, err)
		}

		err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM contributions WHERE fund_id = $1;`, m.FundID).Scan(&totalRaised)
		if err != nil {
			return fmt.Errorf("failed to total fund %d: %w", m.FundID, err)
		}
		contribution.TransactionID = &saved.TransactionID
		return nil
	})
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	return &contribution, saved, totalRaised, nil
}

// MarkDisbursed credits the beneficiary and closes the fund in one transaction.
func (r *PgxFundRepository) MarkDisbursed(ctx context.Context, fundID int64, payout domain.Transaction) (*domain.Transaction, error) {
	var saved *domain.Transaction
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		fund, err := lockFund(ctx, tx, fundID)
		if err != nil {
			return err
		}
		if fund.FundsDisbursed {
			return fmt.Errorf("fund %d: %w", fundID, apperrors.ErrAlreadyDisbursed)
		}

		saved, err = insertTransaction(ctx, tx, payout)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE deceased_funds
			SET funds_disbursed = TRUE, contributions_open = FALSE, total_disbursed = total_disbursed + $1
			WHERE fund_id = $2;
		`, payout.Amount, fundID)
		if err != nil {
			return fmt.Errorf("failed to mark fund %d disbursed: %w", fundID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
