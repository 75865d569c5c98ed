package model

import (
	"testing"
	"time"
)

func TestWithdrawalStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   WithdrawalStatus
		value string
	}{
		{"pending", WithdrawalStatusPending, "pending"},
		{"succeeded", WithdrawalStatusSucceeded, "succeeded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestCouponExpired(t *testing.T) {
	now := time.Now()

	if (Coupon{}).Expired(now) {
		t.Fatal("coupon without expiry must never expire")
	}

	past := now.Add(-time.Hour)
	if !(Coupon{ExpiresAt: &past}).Expired(now) {
		t.Fatal("expected coupon with past expiry to be expired")
	}

	future := now.Add(time.Hour)
	if (Coupon{ExpiresAt: &future}).Expired(now) {
		t.Fatal("coupon with future expiry must not be expired")
	}
}
