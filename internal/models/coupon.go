package models

import (
	"math"
	"time"
)

// CouponStatus represents whether a coupon can currently be redeemed
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
)

// Coupon is a named discount rule: percentage off, optional cap, minimum
// spend, validity window and usage quota. used_count is incremented only
// inside the booking transaction, guarded by used_count < usage_limit.
type Coupon struct {
	ID                 int          `json:"id" db:"id"`
	CouponCode         string       `json:"coupon_code" db:"coupon_code"`
	DiscountPercentage float64      `json:"discount_percentage" db:"discount_percentage"`
	MaxDiscountAmount  *float64     `json:"max_discount_amount,omitempty" db:"max_discount_amount"`
	MinBookingAmount   float64      `json:"min_booking_amount" db:"min_booking_amount"`
	UsageLimit         int          `json:"usage_limit" db:"usage_limit"`
	UsedCount          int          `json:"used_count" db:"used_count"`
	ValidFrom          time.Time    `json:"valid_from" db:"valid_from"`
	ValidUntil         time.Time    `json:"valid_until" db:"valid_until"`
	Status             CouponStatus `json:"status" db:"status"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}

// CouponQuote is the result of evaluating a coupon against an order total.
// FinalAmount is always Total - DiscountAmount.
type CouponQuote struct {
	CouponCode         string  `json:"coupon_code"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	FinalAmount        float64 `json:"final_amount"`
}

// IsCurrentlyValid reports whether the coupon is active and now falls
// inside its validity window. Usage quota is checked separately at
// application time.
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	if c.Status != CouponStatusActive {
		return false
	}
	day := now.Truncate(24 * time.Hour)
	return !day.Before(c.ValidFrom.Truncate(24*time.Hour)) &&
		!day.After(c.ValidUntil.Truncate(24*time.Hour))
}

// IsExhausted reports whether the usage quota has been consumed.
func (c *Coupon) IsExhausted() bool {
	return c.UsedCount >= c.UsageLimit
}

// Quote computes the discount for an order total without side effects.
// The discount is percentage-based, rounded to two decimals, and clamped
// to MaxDiscountAmount when one is set. Returns ErrCouponBelowMinimum
// when the total does not meet the coupon's minimum spend.
func (c *Coupon) Quote(totalAmount float64) (*CouponQuote, error) {
	if totalAmount < c.MinBookingAmount {
		return nil, ErrCouponBelowMinimum
	}

	discount := round2(totalAmount * c.DiscountPercentage / 100)
	if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
		discount = *c.MaxDiscountAmount
	}

	return &CouponQuote{
		CouponCode:         c.CouponCode,
		DiscountPercentage: c.DiscountPercentage,
		DiscountAmount:     discount,
		FinalAmount:        round2(totalAmount - discount),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateCouponRequest is the admin payload for adding a coupon
type CreateCouponRequest struct {
	CouponCode         string   `json:"coupon_code" binding:"required"`
	DiscountPercentage float64  `json:"discount_percentage" binding:"required,gt=0,lte=100"`
	MaxDiscountAmount  *float64 `json:"max_discount_amount"`
	MinBookingAmount   float64  `json:"min_booking_amount" binding:"gte=0"`
	UsageLimit         int      `json:"usage_limit"`
	ValidFrom          string   `json:"valid_from"`
	ValidUntil         string   `json:"valid_until" binding:"required"`
	Status             string   `json:"status"`
}

// ValidateCouponRequest is the payload for the read-only discount preview
type ValidateCouponRequest struct {
	CouponCode  string  `json:"coupon_code" binding:"required"`
	TotalAmount float64 `json:"total_amount" binding:"gte=0"`
}
