package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	testhelpers "github.com/marketbase/marketplace/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewCouponSweeperDefaults(t *testing.T) {
	sweeper := NewCouponSweeper(&testhelpers.SweeperFacadeStub{}, time.Second, 0, 0, testLogger())
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func TestCouponSweeperRemovesExpired(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{Batches: [][]model.Coupon{
		{{ID: "cp1", Name: "OLD", ShopID: "shop1"}},
	}}
	sweeper := NewCouponSweeper(facade, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for len(facade.RemovedIDs()) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for coupon removal")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
	removed := facade.RemovedIDs()
	if len(removed) != 1 || removed[0] != "cp1" {
		t.Fatalf("unexpected removals: %v", removed)
	}
}

func TestCouponSweeperToleratesRemovalRace(t *testing.T) {
	attempts := int32(0)
	facade := &testhelpers.SweeperFacadeStub{
		Batches: [][]model.Coupon{{{ID: "cp1", Name: "OLD"}}},
		RemoveFn: func(ctx context.Context, id string) error {
			atomic.AddInt32(&attempts, 1)
			return domainErrors.ErrNotFound
		},
	}
	sweeper := NewCouponSweeper(facade, 5*time.Millisecond, 1, 2, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&attempts) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for removal attempt")
		case <-time.After(5 * time.Millisecond):
		}
	}
	sweeper.Stop()
}

func TestCouponSweeperContinuesAfterFetchError(t *testing.T) {
	calls := int32(0)
	facade := &testhelpers.SweeperFacadeStub{
		ExpiredFn: func(ctx context.Context, limit int) ([]model.Coupon, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("db down")
			}
			return nil, nil
		},
	}
	sweeper := NewCouponSweeper(facade, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper stopped polling after an error")
		case <-time.After(5 * time.Millisecond):
		}
	}
	sweeper.Stop()
}

func TestCouponSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewCouponSweeper(&testhelpers.SweeperFacadeStub{}, 10*time.Millisecond, 1, 1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)
	sweeper.Stop()
	sweeper.Stop()
}
