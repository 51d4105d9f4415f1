package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// walletFlow runs wallet operations for the signed-in user and keeps the
// last fetched balance, history and funds.
type walletFlow struct {
	BaseService
	api     ports.WalletBackend
	session portssvc.SessionReaderSvc
	gate    portssvc.ReauthGateSvc
	alerter ports.Alerter
	now     func() time.Time

	mu         sync.Mutex
	balance    domain.WalletBalance
	history    []domain.Transaction
	nextPage   string
	funds      []domain.DeceasedFund
	drafts     dto.WalletDrafts
	refreshGen uint64
	fundsGen   uint64
}

// WalletOption configures the wallet flow.
type WalletOption func(*walletFlow)

// WithReauthGate sets the gate in front of outgoing money movements.
func WithReauthGate(gate portssvc.ReauthGateSvc) WalletOption {
	return func(w *walletFlow) {
		w.gate = gate
	}
}

// WithAlerter sets where success and failure alerts go.
func WithAlerter(alerter ports.Alerter) WalletOption {
	return func(w *walletFlow) {
		w.alerter = alerter
	}
}

// WithClock overrides the time source used for voucher references.
func WithClock(now func() time.Time) WalletOption {
	return func(w *walletFlow) {
		w.now = now
	}
}

// NewWalletFlow creates the flow. Without WithReauthGate every outgoing
// movement is refused.
func NewWalletFlow(api ports.WalletBackend, session portssvc.SessionReaderSvc, opts ...WalletOption) portssvc.WalletFlowSvc {
	w := &walletFlow{
		api:     api,
		session: session,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// --- Reader ---

func (w *walletFlow) Balance() domain.WalletBalance {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

func (w *walletFlow) History() []domain.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.history)
}

func (w *walletFlow) Funds() []domain.DeceasedFund {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.funds)
}

func (w *walletFlow) Drafts() dto.WalletDrafts {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.drafts
}

func (w *walletFlow) Recipients(ctx context.Context) ([]domain.MemberRef, error) {
	sc, err := w.sessionContext()
	if err != nil {
		return nil, err
	}
	var self int64
	if profile := w.session.Session().Profile; profile != nil {
		self = profile.UserID
	}

	groups, err := w.api.ListMyGroups(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	seen := make(map[int64]bool)
	var recipients []domain.MemberRef
	for _, group := range groups {
		members, err := w.api.ListGroupMembers(ctx, sc, group.GroupID)
		if err != nil {
			return nil, fmt.Errorf("list members of group %d: %w", group.GroupID, err)
		}
		for _, m := range members {
			if m.Status != domain.MembershipActive || m.IsDeceased {
				continue
			}
			if m.Member.UserID == self || seen[m.Member.UserID] {
				continue
			}
			seen[m.Member.UserID] = true
			recipients = append(recipients, m.Member)
		}
	}
	slices.SortFunc(recipients, func(a, b domain.MemberRef) int {
		return strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
	})
	return recipients, nil
}

// --- Refresh ---

func (w *walletFlow) sessionContext() (ports.SessionContext, error) {
	sc := w.session.SessionContext()
	if sc.Token == "" {
		return sc, fmt.Errorf("not signed in: %w", apperrors.ErrUnauthorized)
	}
	return sc, nil
}

// Refresh refetches balance and the first history page concurrently.
// A refresh overtaken by a newer one is dropped.
func (w *walletFlow) Refresh(ctx context.Context) error {
	sc, err := w.sessionContext()
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.refreshGen++
	gen := w.refreshGen
	w.mu.Unlock()

	var (
		balance  domain.WalletBalance
		history  []domain.Transaction
		nextPage string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		amount, err := w.api.FetchBalance(gctx, sc)
		if err != nil {
			return fmt.Errorf("fetch balance: %w", err)
		}
		balance = domain.WalletBalance{Amount: amount, Known: true}
		return nil
	})
	g.Go(func() error {
		txns, next, err := w.api.ListTransactions(gctx, sc, "")
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		history, nextPage = txns, next
		return nil
	})
	if err := g.Wait(); err != nil {
		w.LogWarn(ctx, "Wallet refresh failed", slog.String("error", err.Error()))
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.refreshGen {
		return fmt.Errorf("wallet refresh: %w", apperrors.ErrStale)
	}
	w.balance = balance
	w.history = history
	w.nextPage = nextPage
	return nil
}

// LoadMoreHistory appends the next history page. It reports false when there is none.
func (w *walletFlow) LoadMoreHistory(ctx context.Context) (bool, error) {
	sc, err := w.sessionContext()
	if err != nil {
		return false, err
	}
	w.mu.Lock()
	page, gen := w.nextPage, w.refreshGen
	w.mu.Unlock()
	if page == "" {
		return false, nil
	}

	txns, next, err := w.api.ListTransactions(ctx, sc, page)
	if err != nil {
		return false, fmt.Errorf("list transactions: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.refreshGen || page != w.nextPage {
		return false, fmt.Errorf("history page: %w", apperrors.ErrStale)
	}
	w.history = append(w.history, txns...)
	w.nextPage = next
	return true, nil
}

func (w *walletFlow) RefreshFunds(ctx context.Context) error {
	sc, err := w.sessionContext()
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.fundsGen++
	gen := w.fundsGen
	w.mu.Unlock()

	funds, err := w.api.ListFunds(ctx, sc)
	if err != nil {
		w.LogWarn(ctx, "Fund list refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("list funds: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.fundsGen {
		return fmt.Errorf("fund refresh: %w", apperrors.ErrStale)
	}
	w.funds = funds
	return nil
}

// refreshAfter runs the single refresh that follows every issued mutating call.
// Its failure never changes the outcome of the operation, but the old balance
// is no longer trusted.
func (w *walletFlow) refreshAfter(ctx context.Context) {
	err := w.Refresh(ctx)
	if err == nil || errors.Is(err, apperrors.ErrStale) {
		return
	}
	w.LogDebug(ctx, "Refresh after wallet operation failed", slog.String("error", err.Error()))
	w.mu.Lock()
	w.balance.Known = false
	w.mu.Unlock()
}

func (w *walletFlow) refreshFundsAfter(ctx context.Context) {
	if err := w.RefreshFunds(ctx); err != nil {
		w.LogDebug(ctx, "Fund refresh after wallet operation failed", slog.String("error", err.Error()))
	}
}

// --- Operations ---

func (w *walletFlow) alert(ctx context.Context, a ports.Alert) {
	if w.alerter != nil {
		w.alerter.Alert(ctx, a)
	}
}

// fail presents err for op and returns it.
func (w *walletFlow) fail(ctx context.Context, op Operation, err error) error {
	if a, ok := AlertFor(op, err); ok {
		w.alert(ctx, a)
	}
	return err
}

// confirm asks the gate. A flow without a gate refuses.
func (w *walletFlow) confirm(ctx context.Context, reason string) bool {
	if w.gate == nil {
		w.LogWarn(ctx, "No re-authentication gate configured, refusing money movement")
		return false
	}
	return w.gate.Confirm(ctx, reason)
}

func (w *walletFlow) TopUp(ctx context.Context, form dto.TopUpForm) error {
	w.mu.Lock()
	w.drafts.TopUp = form
	w.mu.Unlock()

	amount, err := domain.ParseAmount(form.Amount)
	if err != nil {
		return w.fail(ctx, OpTopUp, userError(fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()),
			"Invalid Amount", "Please enter a valid amount to top up."))
	}
	sc, err := w.sessionContext()
	if err != nil {
		return w.fail(ctx, OpTopUp, err)
	}

	voucher := strings.TrimSpace(form.VoucherReference)
	if voucher == "" {
		voucher = fmt.Sprintf("SIM_%d", w.now().UnixMilli())
	}

	err = w.api.TopUp(ctx, sc, dto.TopUpRequest{Amount: amount, VoucherReference: voucher})
	w.refreshAfter(ctx)
	if err != nil {
		w.LogError(ctx, err, "Top-up failed", slog.String("amount", amount.String()))
		return w.fail(ctx, OpTopUp, fmt.Errorf("top up: %w", err))
	}

	w.mu.Lock()
	w.drafts.TopUp = dto.TopUpForm{}
	w.mu.Unlock()
	w.LogInfo(ctx, "Top-up completed", slog.String("amount", amount.String()), slog.String("voucher", voucher))
	w.alert(ctx, ports.Alert{Title: "Success", Message: "Successfully topped up " + domain.FormatCurrency(amount)})
	return nil
}

func (w *walletFlow) SendMoney(ctx context.Context, form dto.SendForm) error {
	w.mu.Lock()
	w.drafts.Send = form
	balance := w.balance
	w.mu.Unlock()

	if form.Recipient == nil || form.Recipient.UserID == 0 {
		return w.fail(ctx, OpSendMoney, userError(apperrors.ErrValidation, "No Recipient", "Please select a recipient."))
	}
	recipient := *form.Recipient
	amount, err := domain.ParseAmount(form.Amount)
	if err != nil {
		return w.fail(ctx, OpSendMoney, userError(fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()),
			"Invalid Amount", "Please enter a valid amount to send."))
	}
	if profile := w.session.Session().Profile; profile != nil && profile.UserID == recipient.UserID {
		return w.fail(ctx, OpSendMoney, userError(apperrors.ErrValidation, "Error", "Cannot send money to yourself"))
	}
	if err := balanceRefusal(balance, amount, "transfer"); err != nil {
		return w.fail(ctx, OpSendMoney, err)
	}
	sc, err := w.sessionContext()
	if err != nil {
		return w.fail(ctx, OpSendMoney, err)
	}

	if !w.confirm(ctx, sendPrompt(amount, recipient.FullName)) {
		return fmt.Errorf("send money: %w", apperrors.ErrReauthDeclined)
	}

	err = w.api.SendMoney(ctx, sc, dto.SendMoneyRequest{
		RecipientUserID: recipient.UserID,
		Amount:          amount,
		Note:            strings.TrimSpace(form.Note),
	})
	w.refreshAfter(ctx)
	if err != nil {
		w.LogError(ctx, err, "Send money failed",
			slog.Int64("recipient_user_id", recipient.UserID), slog.String("amount", amount.String()))
		return w.fail(ctx, OpSendMoney, fmt.Errorf("send money: %w", err))
	}

	w.mu.Lock()
	w.drafts.Send = dto.SendForm{}
	w.mu.Unlock()
	w.LogInfo(ctx, "Money sent", slog.Int64("recipient_user_id", recipient.UserID), slog.String("amount", amount.String()))
	w.alert(ctx, ports.Alert{
		Title:   "Success",
		Message: fmt.Sprintf("Successfully sent %s to %s", domain.FormatCurrency(amount), recipient.FullName),
	})
	return nil
}

func (w *walletFlow) ContributeToDeceased(ctx context.Context, form dto.ContributeForm) error {
	w.mu.Lock()
	w.drafts.Contribute = form
	balance := w.balance
	w.mu.Unlock()

	if form.Fund == nil || form.Fund.FundID == 0 {
		return w.fail(ctx, OpContribute, userError(apperrors.ErrValidation,
			"No Selection", "Please select a deceased member to contribute to."))
	}
	fund := *form.Fund
	amount, err := domain.ParseAmount(form.Amount)
	if err != nil {
		return w.fail(ctx, OpContribute, userError(fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error()),
			"Invalid Amount", "Please enter a valid amount to contribute."))
	}
	if !fund.AcceptsContributions() {
		return w.fail(ctx, OpContribute, userError(apperrors.ErrContributionsClosed,
			"Contributions Closed", "Contributions are closed for this member."))
	}
	if err := balanceRefusal(balance, amount, "contribution"); err != nil {
		return w.fail(ctx, OpContribute, err)
	}
	sc, err := w.sessionContext()
	if err != nil {
		return w.fail(ctx, OpContribute, err)
	}

	if !w.confirm(ctx, contributePrompt(amount, fund.Deceased.FullName)) {
		return fmt.Errorf("contribute: %w", apperrors.ErrReauthDeclined)
	}

	receipt, err := w.api.ContributeToDeceased(ctx, sc, dto.ContributeRequest{DeceasedID: fund.FundID, Amount: amount})
	w.refreshAfter(ctx)
	if err != nil {
		w.LogError(ctx, err, "Contribution failed", slog.Int64("fund_id", fund.FundID), slog.String("amount", amount.String()))
		return w.fail(ctx, OpContribute, fmt.Errorf("contribute: %w", err))
	}
	w.refreshFundsAfter(ctx)

	w.mu.Lock()
	w.drafts.Contribute = dto.ContributeForm{}
	w.mu.Unlock()

	name, total := fund.Deceased.FullName, fund.TotalRaised.Add(amount)
	if receipt != nil {
		if receipt.DeceasedName != "" {
			name = receipt.DeceasedName
		}
		total = receipt.TotalRaised
	}
	w.LogInfo(ctx, "Contribution recorded", slog.Int64("fund_id", fund.FundID), slog.String("amount", amount.String()))
	w.alert(ctx, ports.Alert{
		Title: "Contribution Successful",
		Message: fmt.Sprintf("You contributed %s to %s's fund.\n\nTotal raised: %s",
			domain.FormatCurrency(amount), name, domain.FormatCurrency(total)),
	})
	return nil
}

func (w *walletFlow) DisburseFund(ctx context.Context, fund domain.DeceasedFund) (*domain.Disbursement, error) {
	if err := fund.CanDisburse(); err != nil {
		return nil, w.fail(ctx, OpDisburse, disbursalRefusal(err))
	}
	sc, err := w.sessionContext()
	if err != nil {
		return nil, w.fail(ctx, OpDisburse, err)
	}

	if !w.confirm(ctx, disbursePrompt(fund.Balance(), fund.Beneficiary.FullName)) {
		return nil, fmt.Errorf("disburse: %w", apperrors.ErrReauthDeclined)
	}

	disbursement, err := w.api.DisburseFund(ctx, sc, fund.FundID)
	w.refreshFundsAfter(ctx)
	w.refreshAfter(ctx)
	if err != nil {
		w.LogError(ctx, err, "Disbursement failed", slog.Int64("fund_id", fund.FundID))
		return nil, w.fail(ctx, OpDisburse, fmt.Errorf("disburse fund %d: %w", fund.FundID, err))
	}

	w.LogInfo(ctx, "Fund disbursed", slog.Int64("fund_id", fund.FundID), slog.String("amount", disbursement.Amount.String()))
	w.alert(ctx, ports.Alert{
		Title: "Success",
		Message: fmt.Sprintf("Successfully disbursed %s to %s",
			domain.FormatCurrency(disbursement.Amount), disbursement.Beneficiary),
	})
	return disbursement, nil
}

// balanceRefusal rejects an amount the last known balance cannot cover.
// An unknown balance is refused with its own message.
func balanceRefusal(balance domain.WalletBalance, amount decimal.Decimal, purpose string) error {
	if !balance.Known {
		return userError(apperrors.ErrInsufficientFunds,
			"Balance Unavailable", "Could not confirm your balance. Please refresh and try again.")
	}
	if !balance.Covers(amount) {
		return userError(apperrors.ErrInsufficientFunds,
			"Insufficient Funds", "You do not have enough balance for this "+purpose+".")
	}
	return nil
}

func disbursalRefusal(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrMissingBeneficiary):
		return userError(err, "No Beneficiary", "Please assign a beneficiary before disbursing funds.")
	case errors.Is(err, apperrors.ErrAlreadyDisbursed):
		return userError(err, "Already Disbursed", "Funds have already been disbursed for this member.")
	case errors.Is(err, apperrors.ErrNoFunds):
		return userError(err, "No Funds", "There are no funds available to disburse.")
	default:
		return err
	}
}

var _ portssvc.WalletFlowSvc = (*walletFlow)(nil)
