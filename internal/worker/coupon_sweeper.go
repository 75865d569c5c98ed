package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
)

// CouponFacade exposes the subset of application functionality required by the sweeper.
type CouponFacade interface {
	ExpiredCoupons(ctx context.Context, limit int) ([]model.Coupon, error)
	RemoveCoupon(ctx context.Context, id string) error
}

// CouponSweeper polls for coupons past their validity window and removes
// them concurrently.
type CouponSweeper struct {
	facade       CouponFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Coupon
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCouponSweeper constructs the sweeper worker pool.
func NewCouponSweeper(facade CouponFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *CouponSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &CouponSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Coupon, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *CouponSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *CouponSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *CouponSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *CouponSweeper) fetchAndDispatch(ctx context.Context) {
	coupons, err := s.facade.ExpiredCoupons(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch expired coupons failed", slog.String("error", err.Error()))
		return
	}
	for _, coupon := range coupons {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- coupon:
		}
	}
}

func (s *CouponSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case coupon, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleCoupon(ctx, coupon)
		}
	}
}

func (s *CouponSweeper) handleCoupon(ctx context.Context, coupon model.Coupon) {
	if err := s.facade.RemoveCoupon(ctx, coupon.ID); err != nil {
		// another worker or an explicit delete may have raced us
		if errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		s.logger.Error("remove expired coupon failed", slog.String("coupon", coupon.Name), slog.String("error", err.Error()))
		return
	}
	s.logger.Info("expired coupon removed", slog.String("coupon", coupon.Name), slog.String("shop", coupon.ShopID))
}
