package models

import "time"

// Coupon kinds. Gift cards are redeemed through the same endpoint.
const (
	CouponKindCoupon   = "coupon"
	CouponKindGiftCard = "gift_card"
)

// Coupon is a discount code managed from the admin dashboard.
type Coupon struct {
	Code       string     `json:"code" binding:"required,max=64"`
	Kind       string     `json:"kind,omitempty" binding:"omitempty,oneof=coupon gift_card"`
	AmountOff  *int64     `json:"amount_off,omitempty" binding:"omitempty,gte=0"`
	PercentOff *int64     `json:"percent_off,omitempty" binding:"omitempty,gte=0,lte=100"`
	Active     bool       `json:"active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
