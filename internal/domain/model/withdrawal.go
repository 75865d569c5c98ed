package model

import "time"

// WithdrawalStatus describes the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusSucceeded WithdrawalStatus = "succeeded"
)

// Withdrawal represents a seller's request to pay out funds. The amount is
// fixed at creation; only status and updated_at change afterwards.
type Withdrawal struct {
	ID        string
	SellerID  string
	Amount    float64
	Status    WithdrawalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
