package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/google/uuid"
)

type fundService struct {
	BaseService
	fundRepo      portsrepo.FundRepositoryFacade
	communityRepo portsrepo.GroupReader
}

func NewFundService(fundRepo portsrepo.FundRepositoryFacade, communityRepo portsrepo.GroupReader) portssvc.FundSvcFacade {
	return &fundService{fundRepo: fundRepo, communityRepo: communityRepo}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

func (s *fundService) ListFunds(ctx context.Context, userID int64) ([]domain.DeceasedFund, error) {
	funds, err := s.fundRepo.FindFundsForMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds for user %d: %w", userID, err)
	}
	return funds, nil
}

// disbursalDetail maps a CanDisburse refusal to the message returned to clients.
func disbursalDetail(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrMissingBeneficiary):
		return apperrors.WithDetail(err, "No beneficiary assigned")
	case errors.Is(err, apperrors.ErrAlreadyDisbursed):
		return apperrors.WithDetail(err, "Funds already disbursed")
	case errors.Is(err, apperrors.ErrNoFunds):
		return apperrors.WithDetail(err, "No funds available for disbursement")
	default:
		return err
	}
}

// DisburseFund pays the whole fund balance to the beneficiary. Only group admins may do it.
func (s *fundService) DisburseFund(ctx context.Context, fundID, requestingUserID int64) (*domain.Disbursement, error) {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithDetail(err, "Deceased member not found")
		}
		return nil, fmt.Errorf("failed to look up fund %d: %w", fundID, err)
	}

	membership, err := s.communityRepo.FindMembership(ctx, fund.GroupID, requestingUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership in group %d: %w", fund.GroupID, err)
	}
	if membership == nil || !membership.IsAdmin || membership.Status != domain.MembershipActive {
		s.LogWarn(ctx, "Non-admin attempted disbursement", slog.Int64("fund_id", fundID), slog.Int64("user_id", requestingUserID))
		return nil, apperrors.WithDetail(apperrors.ErrForbidden, "Only group admins can disburse funds")
	}

	if err := fund.CanDisburse(); err != nil {
		return nil, disbursalDetail(err)
	}

	amount := fund.Balance()
	groupID := fund.GroupID
	payout := domain.Transaction{
		WalletUserID: fund.Beneficiary.UserID,
		Type:         domain.PayoutReceived,
		Amount:       amount,
		Status:       domain.StatusCompleted,
		DeceasedID:   &fund.FundID,
		GroupID:      &groupID,
		Reference:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
	}
	txn, err := s.fundRepo.MarkDisbursed(ctx, fundID, payout)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyDisbursed) {
			return nil, disbursalDetail(err)
		}
		s.LogError(ctx, err, "Failed to disburse fund", slog.Int64("fund_id", fundID))
		return nil, fmt.Errorf("failed to disburse fund %d: %w", fundID, err)
	}

	s.LogInfo(ctx, "Fund disbursed",
		slog.Int64("fund_id", fundID),
		slog.Int64("beneficiary_user_id", fund.Beneficiary.UserID),
		slog.String("amount", amount.String()))
	return &domain.Disbursement{
		Amount:      amount,
		Beneficiary: fund.Beneficiary.FullName,
		Transaction: *txn,
	}, nil
}
