package model

import "time"

// Seller represents a shop account holding withdrawable funds.
type Seller struct {
	ID               string
	Name             string
	Email            string
	AvailableBalance float64
	CreatedAt        time.Time
}

// TransactionRecord is a single entry of a seller's transaction history.
// Records are appended when a withdrawal settles and never mutated.
type TransactionRecord struct {
	WithdrawalID string
	Amount       float64
	Status       WithdrawalStatus
	UpdatedAt    time.Time
}
