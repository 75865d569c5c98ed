package dto

import (
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// CreateCouponRequest describes the coupon creation payload.
type CreateCouponRequest struct {
	Name      string     `json:"name" validate:"required"`
	Value     float64    `json:"value" validate:"required,gt=0"`
	MinAmount *float64   `json:"minAmount,omitempty"`
	MaxAmount *float64   `json:"maxAmount,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CouponPayload mirrors a coupon on the wire.
type CouponPayload struct {
	ID        string     `json:"id"`
	ShopID    string     `json:"shopId"`
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	MinAmount *float64   `json:"minAmount,omitempty"`
	MaxAmount *float64   `json:"maxAmount,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewCouponPayload converts the domain coupon.
func NewCouponPayload(c *model.Coupon) CouponPayload {
	return CouponPayload{
		ID:        c.ID,
		ShopID:    c.ShopID,
		Name:      c.Name,
		Value:     c.Value,
		MinAmount: c.MinAmount,
		MaxAmount: c.MaxAmount,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
	}
}

// CouponResponse wraps a single coupon.
type CouponResponse struct {
	Success    bool          `json:"success"`
	CouponCode CouponPayload `json:"couponCode"`
}

// CouponListResponse wraps a shop's coupons.
type CouponListResponse struct {
	Success     bool            `json:"success"`
	CouponCodes []CouponPayload `json:"couponCodes"`
}
