package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// CouponUseCase manages shop discount coupons.
type CouponUseCase struct {
	coupons repository.CouponRepository
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(c repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{coupons: c}
}

// Create registers a coupon after checking the name is unused.
func (u *CouponUseCase) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if coupon.Value <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	if _, err := u.coupons.GetByName(ctx, coupon.Name); err == nil {
		return nil, domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	return u.coupons.Create(ctx, coupon)
}

// ListByShop returns the shop's coupons, newest first.
func (u *CouponUseCase) ListByShop(ctx context.Context, shopID string) ([]model.Coupon, error) {
	return u.coupons.ListByShop(ctx, shopID)
}

// Delete removes the coupon.
func (u *CouponUseCase) Delete(ctx context.Context, id string) error {
	return u.coupons.Delete(ctx, id)
}

// ValueByName looks a coupon up by its public name.
func (u *CouponUseCase) ValueByName(ctx context.Context, name string) (*model.Coupon, error) {
	return u.coupons.GetByName(ctx, name)
}

// ExpiredBatch returns up to limit coupons past their validity window.
func (u *CouponUseCase) ExpiredBatch(ctx context.Context, limit int) ([]model.Coupon, error) {
	return u.coupons.SelectExpired(ctx, limit)
}
