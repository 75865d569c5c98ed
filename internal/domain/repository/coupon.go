package repository

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// CouponRepository describes persistence operations with discount coupons.
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	GetByName(ctx context.Context, name string) (*model.Coupon, error)
	ListByShop(ctx context.Context, shopID string) ([]model.Coupon, error)
	Delete(ctx context.Context, id string) error
	SelectExpired(ctx context.Context, limit int) ([]model.Coupon, error)
}
