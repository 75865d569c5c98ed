package test

import (
	"context"
	"sync"
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// WithdrawFacadeStub provides controllable behaviour for withdrawal endpoints.
type WithdrawFacadeStub struct {
	CreateFn       func(context.Context, string, float64) (*model.Withdrawal, error)
	ListFn         func(context.Context) ([]model.Withdrawal, error)
	SettleFn       func(context.Context, string, string) (*model.Withdrawal, error)
	TransactionsFn func(context.Context, string) ([]model.TransactionRecord, error)
}

// CreateWithdrawal delegates to the override or returns a pending request.
func (s WithdrawFacadeStub) CreateWithdrawal(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sellerID, amount)
	}
	return &model.Withdrawal{ID: "w1", SellerID: sellerID, Amount: amount, Status: model.WithdrawalStatusPending}, nil
}

// Withdrawals returns the preconfigured request list.
func (s WithdrawFacadeStub) Withdrawals(ctx context.Context) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Withdrawal{{ID: "w1", Status: model.WithdrawalStatusPending}}, nil
}

// SettleWithdrawal delegates to the override or reports success.
func (s WithdrawFacadeStub) SettleWithdrawal(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, id, sellerID)
	}
	return &model.Withdrawal{ID: id, SellerID: sellerID, Status: model.WithdrawalStatusSucceeded, UpdatedAt: time.Unix(0, 0)}, nil
}

// SellerTransactions returns preconfigured settlement history.
func (s WithdrawFacadeStub) SellerTransactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, sellerID)
	}
	return []model.TransactionRecord{{WithdrawalID: "w1", Amount: 1, Status: model.WithdrawalStatusSucceeded}}, nil
}

// ConversationFacadeStub provides controllable behaviour for thread endpoints.
type ConversationFacadeStub struct {
	OpenFn    func(context.Context, string, string, string) (*model.Conversation, bool, error)
	ListFn    func(context.Context, string) ([]model.Conversation, error)
	RefreshFn func(context.Context, string, string, string) (*model.Conversation, error)
}

// OpenConversation delegates to the override or fabricates a fresh thread.
func (s ConversationFacadeStub) OpenConversation(ctx context.Context, groupTitle, userID, sellerID string) (*model.Conversation, bool, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, groupTitle, userID, sellerID)
	}
	return &model.Conversation{ID: "c1", GroupTitle: groupTitle, Members: []string{userID, sellerID}}, true, nil
}

// ConversationsForMember returns the preconfigured thread list.
func (s ConversationFacadeStub) ConversationsForMember(ctx context.Context, memberID string) ([]model.Conversation, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, memberID)
	}
	return []model.Conversation{{ID: "c1", Members: []string{memberID}}}, nil
}

// RefreshLastMessage delegates to the override or echoes the update.
func (s ConversationFacadeStub) RefreshLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, id, lastMessage, lastMessageID)
	}
	return &model.Conversation{ID: id, LastMessage: lastMessage, LastMessageID: lastMessageID}, nil
}

// MessageFacadeStub provides controllable behaviour for message endpoints.
type MessageFacadeStub struct {
	SendFn func(context.Context, string, string, string, string) (*model.Message, error)
	ListFn func(context.Context, string) ([]model.Message, error)
}

// SendMessage delegates to the override or echoes the message.
func (s MessageFacadeStub) SendMessage(ctx context.Context, conversationID, sender, text, imageData string) (*model.Message, error) {
	if s.SendFn != nil {
		return s.SendFn(ctx, conversationID, sender, text, imageData)
	}
	return &model.Message{ID: "m1", ConversationID: conversationID, Sender: sender, Text: text}, nil
}

// Messages returns the preconfigured thread history.
func (s MessageFacadeStub) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, conversationID)
	}
	return []model.Message{{ID: "m1", ConversationID: conversationID}}, nil
}

// CouponFacadeStub provides controllable behaviour for coupon endpoints.
type CouponFacadeStub struct {
	CreateFn func(context.Context, *model.Coupon) (*model.Coupon, error)
	ListFn   func(context.Context, string) ([]model.Coupon, error)
	DeleteFn func(context.Context, string) error
	ByNameFn func(context.Context, string) (*model.Coupon, error)
}

// CreateCoupon delegates to the override or echoes the coupon.
func (s CouponFacadeStub) CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, coupon)
	}
	created := *coupon
	created.ID = "cp1"
	return &created, nil
}

// ShopCoupons returns the preconfigured coupon list.
func (s CouponFacadeStub) ShopCoupons(ctx context.Context, shopID string) ([]model.Coupon, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, shopID)
	}
	return []model.Coupon{{ID: "cp1", ShopID: shopID, Name: "SAVE10", Value: 10}}, nil
}

// DeleteCoupon delegates to the override or reports success.
func (s CouponFacadeStub) DeleteCoupon(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// CouponByName delegates to the override or returns a fixed coupon.
func (s CouponFacadeStub) CouponByName(ctx context.Context, name string) (*model.Coupon, error) {
	if s.ByNameFn != nil {
		return s.ByNameFn(ctx, name)
	}
	return &model.Coupon{ID: "cp1", Name: name, Value: 10}, nil
}

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	IntentFn func(context.Context, int64, string) (*model.PaymentIntent, error)
	APIKey   string
}

// CreatePaymentIntent delegates to the override or returns a fixed intent.
func (s PaymentFacadeStub) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	if s.IntentFn != nil {
		return s.IntentFn(ctx, amount, currency)
	}
	return &model.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: currency}, nil
}

// PaymentAPIKey returns the configured publishable key.
func (s PaymentFacadeStub) PaymentAPIKey() string {
	if s.APIKey != "" {
		return s.APIKey
	}
	return "pk_test_stub"
}

// SweeperFacadeStub mimics worker interactions with the coupon facade.
type SweeperFacadeStub struct {
	Batches   [][]model.Coupon
	ExpiredFn func(context.Context, int) ([]model.Coupon, error)
	RemoveFn  func(context.Context, string) error

	mu        sync.Mutex
	Removed   []string
	batchCall int
}

// ExpiredCoupons returns batches from the configured queue.
func (s *SweeperFacadeStub) ExpiredCoupons(ctx context.Context, limit int) ([]model.Coupon, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batchCall < len(s.Batches) {
		batch := s.Batches[s.batchCall]
		s.batchCall++
		return batch, nil
	}
	return nil, nil
}

// RemoveCoupon records removal requests.
func (s *SweeperFacadeStub) RemoveCoupon(ctx context.Context, id string) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, id)
	return nil
}

// RemovedIDs returns a copy of the recorded removals.
func (s *SweeperFacadeStub) RemovedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Removed))
	copy(out, s.Removed)
	return out
}

// SellerProviderStub resolves seller profiles for middleware tests.
type SellerProviderStub struct {
	SellerVal *model.Seller
	Err       error
	SellerFn  func(context.Context, string) (*model.Seller, error)
}

// Seller returns the configured profile or error.
func (s SellerProviderStub) Seller(ctx context.Context, id string) (*model.Seller, error) {
	if s.SellerFn != nil {
		return s.SellerFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.SellerVal != nil {
		return s.SellerVal, nil
	}
	return &model.Seller{ID: id, Name: "seller", Email: "seller@example.com"}, nil
}

// HasherStub provides deterministic key comparison for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable digest for the supplied key.
func (h HasherStub) Hash(key string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(key)
	}
	return "hash:" + key, nil
}

// Compare validates key against the stored digest.
func (h HasherStub) Compare(hash string, key string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, key)
	}
	if hash != "hash:"+key {
		return errMismatch
	}
	return nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	WithdrawFacadeStub
	ConversationFacadeStub
	MessageFacadeStub
	CouponFacadeStub
	PaymentFacadeStub
	TokenParserStub
	SellerProviderStub
}
