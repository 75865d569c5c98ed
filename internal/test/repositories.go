package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// SellerRepositoryStub provides controllable seller persistence behaviour.
type SellerRepositoryStub struct {
	Seller  *model.Seller
	Records []model.TransactionRecord

	GetByIDFn      func(context.Context, string) (*model.Seller, error)
	AppendFn       func(context.Context, string, model.TransactionRecord) error
	TransactionsFn func(context.Context, string) ([]model.TransactionRecord, error)
}

func (s *SellerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Seller, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Seller == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Seller, nil
}

func (s *SellerRepositoryStub) AppendTransaction(ctx context.Context, sellerID string, record model.TransactionRecord) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, sellerID, record)
	}
	s.Records = append(s.Records, record)
	return nil
}

func (s *SellerRepositoryStub) Transactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, sellerID)
	}
	return s.Records, nil
}

// WithdrawalRepositoryStub provides controllable withdrawal persistence behaviour.
type WithdrawalRepositoryStub struct {
	Items []model.Withdrawal

	CreateFn func(context.Context, string, float64) (*model.Withdrawal, error)
	SettleFn func(context.Context, string, string) (*model.Withdrawal, error)
	GetFn    func(context.Context, string) (*model.Withdrawal, error)
	ListFn   func(context.Context) ([]model.Withdrawal, error)
}

func (s *WithdrawalRepositoryStub) Create(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sellerID, amount)
	}
	now := time.Now()
	return &model.Withdrawal{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		Amount:    amount,
		Status:    model.WithdrawalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *WithdrawalRepositoryStub) Settle(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, id, sellerID)
	}
	return &model.Withdrawal{
		ID:        id,
		SellerID:  sellerID,
		Amount:    80,
		Status:    model.WithdrawalStatusSucceeded,
		UpdatedAt: time.Now(),
	}, nil
}

func (s *WithdrawalRepositoryStub) GetByID(ctx context.Context, id string) (*model.Withdrawal, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *WithdrawalRepositoryStub) List(ctx context.Context) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Items, nil
}

// MemoryLedger is a concurrency-safe in-memory implementation of the
// withdrawal ledger contract: pending record and conditional debit commit
// together under one lock. Used to exercise concurrent creation scenarios.
type MemoryLedger struct {
	mu          sync.Mutex
	Balances    map[string]float64
	Withdrawals []model.Withdrawal
	History     map[string][]model.TransactionRecord
}

// NewMemoryLedger builds a ledger with the given seller balances.
func NewMemoryLedger(balances map[string]float64) *MemoryLedger {
	b := make(map[string]float64, len(balances))
	for k, v := range balances {
		b[k] = v
	}
	return &MemoryLedger{Balances: b, History: make(map[string][]model.TransactionRecord)}
}

func (l *MemoryLedger) Create(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.Balances[sellerID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if balance < amount {
		return nil, domainErrors.ErrInsufficientBalance
	}
	l.Balances[sellerID] = balance - amount

	now := time.Now()
	w := model.Withdrawal{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		Amount:    amount,
		Status:    model.WithdrawalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.Withdrawals = append(l.Withdrawals, w)
	return &w, nil
}

func (l *MemoryLedger) Settle(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.Withdrawals {
		if l.Withdrawals[i].ID != id {
			continue
		}
		if l.Withdrawals[i].SellerID != sellerID {
			return nil, domainErrors.ErrSellerMismatch
		}
		if l.Withdrawals[i].Status != model.WithdrawalStatusPending {
			return nil, domainErrors.ErrAlreadySettled
		}
		l.Withdrawals[i].Status = model.WithdrawalStatusSucceeded
		l.Withdrawals[i].UpdatedAt = time.Now()
		w := l.Withdrawals[i]
		l.History[sellerID] = append(l.History[sellerID], model.TransactionRecord{
			WithdrawalID: w.ID,
			Amount:       w.Amount,
			Status:       w.Status,
			UpdatedAt:    w.UpdatedAt,
		})
		return &w, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (l *MemoryLedger) GetByID(ctx context.Context, id string) (*model.Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.Withdrawals {
		if l.Withdrawals[i].ID == id {
			w := l.Withdrawals[i]
			return &w, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (l *MemoryLedger) List(ctx context.Context) ([]model.Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Withdrawal, len(l.Withdrawals))
	copy(out, l.Withdrawals)
	return out, nil
}

// Balance returns the current balance for the seller.
func (l *MemoryLedger) Balance(sellerID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Balances[sellerID]
}

// ConversationRepositoryStub provides controllable thread persistence behaviour.
type ConversationRepositoryStub struct {
	Items []model.Conversation

	CreateFn     func(context.Context, string, []string) (*model.Conversation, error)
	GetByTitleFn func(context.Context, string) (*model.Conversation, error)
	ListFn       func(context.Context, string) ([]model.Conversation, error)
	UpdateFn     func(context.Context, string, string, string) (*model.Conversation, error)
}

func (s *ConversationRepositoryStub) Create(ctx context.Context, groupTitle string, members []string) (*model.Conversation, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, groupTitle, members)
	}
	return &model.Conversation{ID: uuid.NewString(), GroupTitle: groupTitle, Members: members}, nil
}

func (s *ConversationRepositoryStub) GetByTitle(ctx context.Context, groupTitle string) (*model.Conversation, error) {
	if s.GetByTitleFn != nil {
		return s.GetByTitleFn(ctx, groupTitle)
	}
	for i := range s.Items {
		if s.Items[i].GroupTitle == groupTitle {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ConversationRepositoryStub) ListByMember(ctx context.Context, memberID string) ([]model.Conversation, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, memberID)
	}
	return s.Items, nil
}

func (s *ConversationRepositoryStub) UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, lastMessage, lastMessageID)
	}
	return &model.Conversation{ID: id, LastMessage: lastMessage, LastMessageID: lastMessageID}, nil
}

// MessageRepositoryStub provides controllable message persistence behaviour.
type MessageRepositoryStub struct {
	Items []model.Message

	CreateFn func(context.Context, *model.Message) (*model.Message, error)
	ListFn   func(context.Context, string) ([]model.Message, error)
}

func (s *MessageRepositoryStub) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, msg)
	}
	created := *msg
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now()
	return &created, nil
}

func (s *MessageRepositoryStub) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, conversationID)
	}
	return s.Items, nil
}

// CouponRepositoryStub provides controllable coupon persistence behaviour.
type CouponRepositoryStub struct {
	Items []model.Coupon

	CreateFn        func(context.Context, *model.Coupon) (*model.Coupon, error)
	GetByNameFn     func(context.Context, string) (*model.Coupon, error)
	ListFn          func(context.Context, string) ([]model.Coupon, error)
	DeleteFn        func(context.Context, string) error
	SelectExpiredFn func(context.Context, int) ([]model.Coupon, error)
}

func (s *CouponRepositoryStub) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, coupon)
	}
	created := *coupon
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	return &created, nil
}

func (s *CouponRepositoryStub) GetByName(ctx context.Context, name string) (*model.Coupon, error) {
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, name)
	}
	for i := range s.Items {
		if s.Items[i].Name == name {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CouponRepositoryStub) ListByShop(ctx context.Context, shopID string) ([]model.Coupon, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, shopID)
	}
	return s.Items, nil
}

func (s *CouponRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *CouponRepositoryStub) SelectExpired(ctx context.Context, limit int) ([]model.Coupon, error) {
	if s.SelectExpiredFn != nil {
		return s.SelectExpiredFn(ctx, limit)
	}
	now := time.Now()
	var out []model.Coupon
	for _, c := range s.Items {
		if c.Expired(now) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

var (
	_ repository.SellerRepository       = (*SellerRepositoryStub)(nil)
	_ repository.WithdrawalRepository   = (*WithdrawalRepositoryStub)(nil)
	_ repository.WithdrawalRepository   = (*MemoryLedger)(nil)
	_ repository.ConversationRepository = (*ConversationRepositoryStub)(nil)
	_ repository.MessageRepository      = (*MessageRepositoryStub)(nil)
	_ repository.CouponRepository       = (*CouponRepositoryStub)(nil)
)
