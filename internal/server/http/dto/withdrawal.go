package dto

import (
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// CreateWithdrawRequest describes the withdrawal creation payload.
type CreateWithdrawRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// SettleWithdrawRequest describes the settlement payload.
type SettleWithdrawRequest struct {
	SellerID string `json:"sellerId" validate:"required"`
}

// WithdrawPayload mirrors a withdrawal request on the wire.
type WithdrawPayload struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"sellerId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewWithdrawPayload converts the domain withdrawal.
func NewWithdrawPayload(w *model.Withdrawal) WithdrawPayload {
	return WithdrawPayload{
		ID:        w.ID,
		SellerID:  w.SellerID,
		Amount:    w.Amount,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WithdrawResponse wraps a single withdrawal.
type WithdrawResponse struct {
	Success  bool            `json:"success"`
	Withdraw WithdrawPayload `json:"withdraw"`
}

// WithdrawListResponse wraps the full request list.
type WithdrawListResponse struct {
	Success   bool              `json:"success"`
	Withdraws []WithdrawPayload `json:"withdraws"`
}

// TransactionPayload mirrors one ledger history entry on the wire.
type TransactionPayload struct {
	WithdrawalID string    `json:"withdrawId"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewTransactionPayload converts the domain transaction record.
func NewTransactionPayload(rec model.TransactionRecord) TransactionPayload {
	return TransactionPayload{
		WithdrawalID: rec.WithdrawalID,
		Amount:       rec.Amount,
		Status:       string(rec.Status),
		UpdatedAt:    rec.UpdatedAt,
	}
}

// TransactionListResponse wraps the seller's settlement history.
type TransactionListResponse struct {
	Success      bool                 `json:"success"`
	Transactions []TransactionPayload `json:"transactions"`
}
