package repository

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// WithdrawalRepository owns the withdrawal ledger. Create and Settle are
// atomic: the pending record and the balance debit commit together, as do
// the status transition and the history append.
type WithdrawalRepository interface {
	// Create inserts a pending withdrawal and debits the seller's available
	// balance in one transaction. The debit is conditional: it fails with
	// ErrInsufficientBalance instead of driving the balance negative.
	Create(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error)

	// Settle transitions a pending withdrawal to succeeded and appends a
	// transaction record to the seller's history in one transaction.
	// Preconditions: the withdrawal exists (ErrNotFound), belongs to
	// sellerID (ErrSellerMismatch) and is still pending (ErrAlreadySettled).
	Settle(ctx context.Context, id, sellerID string) (*model.Withdrawal, error)

	GetByID(ctx context.Context, id string) (*model.Withdrawal, error)

	// List returns every withdrawal ordered by creation time, newest first.
	List(ctx context.Context) ([]model.Withdrawal, error)
}
