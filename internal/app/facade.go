package app

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
	"github.com/marketbase/marketplace/internal/pkg/auth"
	"github.com/marketbase/marketplace/internal/usecase"
)

// PaymentProvider prepares charges at the external payment gateway.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error)
	PublishableKey() string
}

// MarketplaceFacade aggregates the application's use cases behind a single
// surface consumed by the HTTP layer and the background workers.
type MarketplaceFacade struct {
	withdrawals   *usecase.WithdrawalUseCase
	conversations *usecase.ConversationUseCase
	messages      *usecase.MessageUseCase
	coupons       *usecase.CouponUseCase
	payments      PaymentProvider
	sellers       repository.SellerRepository
	tokens        auth.Strategy
}

// NewMarketplaceFacade constructs MarketplaceFacade.
func NewMarketplaceFacade(
	withdrawals *usecase.WithdrawalUseCase,
	conversations *usecase.ConversationUseCase,
	messages *usecase.MessageUseCase,
	coupons *usecase.CouponUseCase,
	payments PaymentProvider,
	sellers repository.SellerRepository,
	tokens auth.Strategy,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		withdrawals:   withdrawals,
		conversations: conversations,
		messages:      messages,
		coupons:       coupons,
		payments:      payments,
		sellers:       sellers,
		tokens:        tokens,
	}
}

// ParseToken resolves the subject and role carried by a session token.
func (f *MarketplaceFacade) ParseToken(token string) (string, string, error) {
	return f.tokens.ParseToken(token)
}

// Seller loads the seller profile for middleware and notifications.
func (f *MarketplaceFacade) Seller(ctx context.Context, id string) (*model.Seller, error) {
	return f.sellers.GetByID(ctx, id)
}

// CreateWithdrawal registers a pending withdrawal request for the seller.
func (f *MarketplaceFacade) CreateWithdrawal(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error) {
	seller, err := f.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return f.withdrawals.Create(ctx, seller, amount)
}

// Withdrawals returns every withdrawal request, newest first.
func (f *MarketplaceFacade) Withdrawals(ctx context.Context) ([]model.Withdrawal, error) {
	return f.withdrawals.List(ctx)
}

// SettleWithdrawal marks a pending request as paid out.
func (f *MarketplaceFacade) SettleWithdrawal(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	return f.withdrawals.Settle(ctx, id, sellerID)
}

// SellerTransactions returns the seller's settled withdrawal history.
func (f *MarketplaceFacade) SellerTransactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
	return f.withdrawals.Transactions(ctx, sellerID)
}

// OpenConversation returns the thread for the pair, creating it when absent.
func (f *MarketplaceFacade) OpenConversation(ctx context.Context, groupTitle, userID, sellerID string) (*model.Conversation, bool, error) {
	return f.conversations.CreateOrFetch(ctx, groupTitle, userID, sellerID)
}

// ConversationsForMember returns the member's threads.
func (f *MarketplaceFacade) ConversationsForMember(ctx context.Context, memberID string) ([]model.Conversation, error) {
	return f.conversations.ListForMember(ctx, memberID)
}

// RefreshLastMessage updates the thread preview fields.
func (f *MarketplaceFacade) RefreshLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error) {
	return f.conversations.UpdateLastMessage(ctx, id, lastMessage, lastMessageID)
}

// SendMessage appends a message, uploading the image payload when present.
func (f *MarketplaceFacade) SendMessage(ctx context.Context, conversationID, sender, text, imageData string) (*model.Message, error) {
	return f.messages.Send(ctx, conversationID, sender, text, imageData)
}

// Messages returns the thread's history in chronological order.
func (f *MarketplaceFacade) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	return f.messages.ListByConversation(ctx, conversationID)
}

// CreateCoupon registers a coupon for the shop.
func (f *MarketplaceFacade) CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	return f.coupons.Create(ctx, coupon)
}

// ShopCoupons returns the shop's coupons.
func (f *MarketplaceFacade) ShopCoupons(ctx context.Context, shopID string) ([]model.Coupon, error) {
	return f.coupons.ListByShop(ctx, shopID)
}

// DeleteCoupon removes the coupon.
func (f *MarketplaceFacade) DeleteCoupon(ctx context.Context, id string) error {
	return f.coupons.Delete(ctx, id)
}

// CouponByName resolves a coupon by its public name.
func (f *MarketplaceFacade) CouponByName(ctx context.Context, name string) (*model.Coupon, error) {
	return f.coupons.ValueByName(ctx, name)
}

// ExpiredCoupons returns up to limit coupons past their validity window.
func (f *MarketplaceFacade) ExpiredCoupons(ctx context.Context, limit int) ([]model.Coupon, error) {
	return f.coupons.ExpiredBatch(ctx, limit)
}

// RemoveCoupon deletes an expired coupon on behalf of the sweeper.
func (f *MarketplaceFacade) RemoveCoupon(ctx context.Context, id string) error {
	return f.coupons.Delete(ctx, id)
}

// CreatePaymentIntent prepares a charge at the payment gateway.
func (f *MarketplaceFacade) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	return f.payments.CreateIntent(ctx, amount, currency)
}

// PaymentAPIKey returns the publishable key for the storefront.
func (f *MarketplaceFacade) PaymentAPIKey() string {
	return f.payments.PublishableKey()
}
