package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon() *Coupon {
	cap := 300.0
	return &Coupon{
		ID:                 1,
		CouponCode:         "SUMMER20",
		DiscountPercentage: 20,
		MaxDiscountAmount:  &cap,
		MinBookingAmount:   1000,
		UsageLimit:         100,
		UsedCount:          5,
		ValidFrom:          time.Now().AddDate(0, 0, -7),
		ValidUntil:         time.Now().AddDate(0, 0, 7),
		Status:             CouponStatusActive,
	}
}

func TestCouponQuote(t *testing.T) {
	t.Run("Discount Clamped To Cap", func(t *testing.T) {
		coupon := validCoupon()

		// 20% of 2000 is 400, capped at 300
		quote, err := coupon.Quote(2000)
		require.NoError(t, err)
		assert.Equal(t, 300.0, quote.DiscountAmount)
		assert.Equal(t, 1700.0, quote.FinalAmount)
	})

	t.Run("Discount Below Cap", func(t *testing.T) {
		coupon := validCoupon()

		quote, err := coupon.Quote(1000)
		require.NoError(t, err)
		assert.Equal(t, 200.0, quote.DiscountAmount)
		assert.Equal(t, 800.0, quote.FinalAmount)
	})

	t.Run("No Cap", func(t *testing.T) {
		coupon := validCoupon()
		coupon.CouponCode = "STUDENT15"
		coupon.DiscountPercentage = 15
		coupon.MaxDiscountAmount = nil
		coupon.MinBookingAmount = 0

		quote, err := coupon.Quote(1700)
		require.NoError(t, err)
		assert.Equal(t, 255.0, quote.DiscountAmount)
		assert.Equal(t, 1445.0, quote.FinalAmount)
	})

	t.Run("Below Minimum Spend", func(t *testing.T) {
		coupon := validCoupon()
		coupon.CouponCode = "WELCOME10"
		coupon.MinBookingAmount = 1500

		quote, err := coupon.Quote(850)
		assert.ErrorIs(t, err, ErrCouponBelowMinimum)
		assert.Nil(t, quote)
	})

	t.Run("Exactly At Minimum Spend", func(t *testing.T) {
		coupon := validCoupon()

		quote, err := coupon.Quote(1000)
		require.NoError(t, err)
		assert.NotNil(t, quote)
	})

	t.Run("Rounds To Two Decimals", func(t *testing.T) {
		coupon := validCoupon()
		coupon.DiscountPercentage = 12.5
		coupon.MinBookingAmount = 0

		quote, err := coupon.Quote(999.99)
		require.NoError(t, err)
		assert.Equal(t, 125.0, quote.DiscountAmount)
		assert.InDelta(t, 874.99, quote.FinalAmount, 0.001)
	})

	t.Run("Final Amount Identity", func(t *testing.T) {
		coupon := validCoupon()
		for _, total := range []float64{1000, 1234.56, 2000, 9999.99} {
			quote, err := coupon.Quote(total)
			require.NoError(t, err)
			assert.InDelta(t, total-quote.DiscountAmount, quote.FinalAmount, 0.001)
			assert.GreaterOrEqual(t, quote.DiscountAmount, 0.0)
			assert.LessOrEqual(t, quote.DiscountAmount, total)
		}
	})
}

func TestCouponValidity(t *testing.T) {
	t.Run("Active Within Window", func(t *testing.T) {
		coupon := validCoupon()
		assert.True(t, coupon.IsCurrentlyValid(time.Now()))
	})

	t.Run("Inactive", func(t *testing.T) {
		coupon := validCoupon()
		coupon.Status = CouponStatusInactive
		assert.False(t, coupon.IsCurrentlyValid(time.Now()))
	})

	t.Run("Before Window", func(t *testing.T) {
		coupon := validCoupon()
		coupon.ValidFrom = time.Now().AddDate(0, 0, 2)
		assert.False(t, coupon.IsCurrentlyValid(time.Now()))
	})

	t.Run("After Window", func(t *testing.T) {
		coupon := validCoupon()
		coupon.ValidUntil = time.Now().AddDate(0, 0, -1)
		assert.False(t, coupon.IsCurrentlyValid(time.Now()))
	})

	t.Run("Valid On Last Day", func(t *testing.T) {
		coupon := validCoupon()
		coupon.ValidUntil = time.Now()
		assert.True(t, coupon.IsCurrentlyValid(time.Now()))
	})
}

func TestCouponExhaustion(t *testing.T) {
	coupon := validCoupon()
	assert.False(t, coupon.IsExhausted())

	coupon.UsedCount = coupon.UsageLimit
	assert.True(t, coupon.IsExhausted())

	coupon.UsedCount = coupon.UsageLimit + 1
	assert.True(t, coupon.IsExhausted())
}
