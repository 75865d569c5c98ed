package model

import "time"

// Coupon is a shop-scoped discount code. Name is globally unique.
type Coupon struct {
	ID        string
	ShopID    string
	Name      string
	Value     float64
	MinAmount *float64
	MaxAmount *float64
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Expired reports whether the coupon's validity window has passed.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
