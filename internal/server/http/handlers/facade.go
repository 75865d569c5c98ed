package handlers

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// WithdrawFacade encapsulates withdrawal operations exposed via HTTP.
type WithdrawFacade interface {
	CreateWithdrawal(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error)
	Withdrawals(ctx context.Context) ([]model.Withdrawal, error)
	SettleWithdrawal(ctx context.Context, id, sellerID string) (*model.Withdrawal, error)
	SellerTransactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error)
}

// ConversationFacade encapsulates message thread operations.
type ConversationFacade interface {
	OpenConversation(ctx context.Context, groupTitle, userID, sellerID string) (*model.Conversation, bool, error)
	ConversationsForMember(ctx context.Context, memberID string) ([]model.Conversation, error)
	RefreshLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error)
}

// MessageFacade encapsulates message operations.
type MessageFacade interface {
	SendMessage(ctx context.Context, conversationID, sender, text, imageData string) (*model.Message, error)
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)
}

// CouponFacade encapsulates coupon operations.
type CouponFacade interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	ShopCoupons(ctx context.Context, shopID string) ([]model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
	CouponByName(ctx context.Context, name string) (*model.Coupon, error)
}

// PaymentFacade encapsulates payment gateway operations.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error)
	PaymentAPIKey() string
}

// AccessFacade provides token parsing and seller resolution for middleware.
type AccessFacade interface {
	ParseToken(token string) (string, string, error)
	Seller(ctx context.Context, id string) (*model.Seller, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	WithdrawFacade
	ConversationFacade
	MessageFacade
	CouponFacade
	PaymentFacade
	AccessFacade
}
