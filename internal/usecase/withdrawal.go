package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// Notifier dispatches a single email. Best effort, no retries; callers
// decide what a failure means for the operation in flight.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

const defaultNotifyTimeout = 5 * time.Second

// WithdrawalUseCase manages the withdrawal request lifecycle: creation with
// balance debit and admin settlement with history append.
//
// The two operations treat notification failures differently. On creation
// the "processing" mail must succeed before any ledger mutation happens. On
// settlement the status transition and history append commit first, and a
// confirmation mail failure is still reported to the caller.
type WithdrawalUseCase struct {
	withdrawals   repository.WithdrawalRepository
	sellers       repository.SellerRepository
	notifier      Notifier
	notifyTimeout time.Duration
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(w repository.WithdrawalRepository, s repository.SellerRepository, n Notifier, notifyTimeout time.Duration) *WithdrawalUseCase {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &WithdrawalUseCase{withdrawals: w, sellers: s, notifier: n, notifyTimeout: notifyTimeout}
}

// Create registers a pending withdrawal for the seller and debits the
// available balance. The record and the debit commit atomically; a
// notification failure aborts the operation before either happens.
func (u *WithdrawalUseCase) Create(ctx context.Context, seller *model.Seller, amount float64) (*model.Withdrawal, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domainErrors.ErrInvalidAmount
	}

	body := fmt.Sprintf("Hello %s, your withdraw request of %.2f$ is processing. It will take 3 to 7 days.", seller.Name, amount)
	if err := u.notify(ctx, seller.Email, "Withdraw Request", body); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrNotificationFailed, err)
	}

	return u.withdrawals.Create(ctx, seller.ID, amount)
}

// List returns every withdrawal, newest first.
func (u *WithdrawalUseCase) List(ctx context.Context) ([]model.Withdrawal, error) {
	return u.withdrawals.List(ctx)
}

// Settle transitions a pending withdrawal to succeeded and appends the
// transaction record to the seller's history. The confirmation mail is sent
// only after the transition committed; if it fails, the settled withdrawal
// is returned together with the error so callers can tell the two apart.
func (u *WithdrawalUseCase) Settle(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	w, err := u.withdrawals.Settle(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}

	seller, err := u.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return w, fmt.Errorf("%w: %v", domainErrors.ErrNotificationFailed, err)
	}

	body := fmt.Sprintf("Hello %s, your withdraw request of %.2f$ is on the way. Delivery time depends on your bank's rules, it usually takes 3 to 7 days.", seller.Name, w.Amount)
	if err := u.notify(ctx, seller.Email, "Payment confirmation", body); err != nil {
		return w, fmt.Errorf("%w: %v", domainErrors.ErrNotificationFailed, err)
	}

	return w, nil
}

// Transactions returns the seller's settled withdrawal history.
func (u *WithdrawalUseCase) Transactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
	return u.sellers.Transactions(ctx, sellerID)
}

func (u *WithdrawalUseCase) notify(ctx context.Context, recipient, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, u.notifyTimeout)
	defer cancel()
	return u.notifier.Send(ctx, recipient, subject, body)
}
