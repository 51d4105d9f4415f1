package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/SscSPs/komunity_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := &walletHandler{walletService: walletService}

	wallets := rg.Group("/wallets")
	{
		wallets.GET("/balance/", h.getBalance)
		wallets.POST("/top_up/", h.topUp)
		wallets.POST("/send_money/", h.sendMoney)
		wallets.POST("/contribute_to_deceased/", h.contributeToDeceased)
	}
	rg.GET("/transactions/", h.listTransactions)
}

func (h *walletHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// listTransactions godoc
// @Summary List wallet transactions
// @Description Newest first. The next page token is returned in the X-Next-Page-Token header.
// @Tags wallets
// @Produce json
// @Param limit query int false "Page size"
// @Param page_token query string false "Cursor from a previous page"
// @Success 200 {array} dto.TransactionResponse
// @Security TokenAuth
// @Router /transactions/ [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.walletService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	owner := dto.WalletParty{UserID: userID}
	res := make([]dto.TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = dto.ToTransactionResponse(txn, owner)
	}
	if next != "" {
		c.Header(dto.NextPageTokenHeader, next)
	}
	c.JSON(http.StatusOK, res)
}

func toOperationResponse(userID int64, op *domain.WalletOperation) dto.WalletOperationResponse {
	res := dto.WalletOperationResponse{
		Status:      "success",
		Balance:     op.Balance,
		Transaction: dto.ToTransactionResponse(op.Transaction, dto.WalletParty{UserID: userID}),
		Recipient:   op.Recipient,
	}
	if op.Receipt != nil {
		res.Contribution = &dto.ContributionResponse{
			ID:          op.Receipt.ContributionID,
			Deceased:    op.Receipt.DeceasedName,
			Amount:      op.Receipt.Amount,
			TotalRaised: op.Receipt.TotalRaised,
		}
	}
	return res
}

// topUp godoc
// @Summary Top up the wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param body body dto.TopUpRequest true "Amount and voucher"
// @Success 200 {object} dto.WalletOperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security TokenAuth
// @Router /wallets/top_up/ [post]
func (h *walletHandler) topUp(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.TopUpRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.walletService.TopUp(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to top up wallet")
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(userID, op))
}

func (h *walletHandler) sendMoney(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SendMoneyRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.walletService.SendMoney(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to send money")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Money sent", slog.Int64("recipient_id", req.RecipientUserID))
	c.JSON(http.StatusOK, toOperationResponse(userID, op))
}

func (h *walletHandler) contributeToDeceased(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContributeRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.walletService.ContributeToDeceased(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to process contribution")
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(userID, op))
}
