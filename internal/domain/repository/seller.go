package repository

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// SellerRepository provides access to seller accounts and their
// transaction history.
type SellerRepository interface {
	GetByID(ctx context.Context, id string) (*model.Seller, error)
	AppendTransaction(ctx context.Context, sellerID string, record model.TransactionRecord) error
	Transactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error)
}
