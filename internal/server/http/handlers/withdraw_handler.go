package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/server/http/dto"
)

// WithdrawHandler manages withdrawal request endpoints.
type WithdrawHandler struct {
	facade WithdrawFacade
}

// NewWithdrawHandler constructs WithdrawHandler.
func NewWithdrawHandler(facade WithdrawFacade) *WithdrawHandler {
	return &WithdrawHandler{facade: facade}
}

// Create handles POST /api/v2/withdraw/create-withdraw-request.
func (h *WithdrawHandler) Create(c *gin.Context) {
	seller := CurrentSeller(c)
	if seller == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "seller access required"})
		return
	}

	var req dto.CreateWithdrawRequest
	if !bindAndValidate(c, &req) {
		return
	}

	w, err := h.facade.CreateWithdrawal(c.Request.Context(), seller.ID, req.Amount)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.WithdrawResponse{Success: true, Withdraw: dto.NewWithdrawPayload(w)})
}

// List handles GET /api/v2/withdraw/get-all-withdraw-request.
func (h *WithdrawHandler) List(c *gin.Context) {
	withdrawals, err := h.facade.Withdrawals(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	resp := dto.WithdrawListResponse{Success: true, Withdraws: make([]dto.WithdrawPayload, 0, len(withdrawals))}
	for i := range withdrawals {
		resp.Withdraws = append(resp.Withdraws, dto.NewWithdrawPayload(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Transactions handles GET /api/v2/withdraw/get-seller-transactions.
func (h *WithdrawHandler) Transactions(c *gin.Context) {
	seller := CurrentSeller(c)
	if seller == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "seller access required"})
		return
	}

	records, err := h.facade.SellerTransactions(c.Request.Context(), seller.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	resp := dto.TransactionListResponse{Success: true, Transactions: make([]dto.TransactionPayload, 0, len(records))}
	for _, rec := range records {
		resp.Transactions = append(resp.Transactions, dto.NewTransactionPayload(rec))
	}
	c.JSON(http.StatusOK, resp)
}

// Settle handles PUT /api/v2/withdraw/update-withdraw-request/:id.
func (h *WithdrawHandler) Settle(c *gin.Context) {
	var req dto.SettleWithdrawRequest
	if !bindAndValidate(c, &req) {
		return
	}

	w, err := h.facade.SettleWithdrawal(c.Request.Context(), c.Param("id"), req.SellerID)
	if err != nil {
		// the transition is durable once a withdrawal comes back with the
		// error, only the confirmation mail failed
		if errors.Is(err, domainErrors.ErrNotificationFailed) && w != nil {
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "withdrawal settled, confirmation mail failed"})
			return
		}
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{Success: true, Withdraw: dto.NewWithdrawPayload(w)})
}
