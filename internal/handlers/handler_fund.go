package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type fundHandler struct {
	fundService portssvc.FundSvcFacade
}

func registerFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade) {
	h := &fundHandler{fundService: fundService}

	deceased := rg.Group("/deceased")
	{
		deceased.GET("/", h.listFunds)
		deceased.POST("/:id/disburse_funds/", h.disburseFunds)
	}
}

func (h *fundHandler) listFunds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	funds, err := h.fundService.ListFunds(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list deceased members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDeceasedResponse(funds))
}

// disburseFunds pays the fund balance to the beneficiary. Group admins only.
func (h *fundHandler) disburseFunds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fundID, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.fundService.DisburseFund(c.Request.Context(), fundID, userID)
	if err != nil {
		respondError(c, err, "Failed to disburse funds")
		return
	}
	c.JSON(http.StatusOK, dto.DisbursementResponse{
		Status:      "success",
		Amount:      res.Amount,
		Beneficiary: res.Beneficiary,
		Transaction: dto.ToTransactionResponse(res.Transaction, dto.WalletParty{UserID: res.Transaction.WalletUserID, FullName: res.Beneficiary}),
	})
}
