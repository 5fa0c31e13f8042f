package services

import (
	"time"

	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CouponService provides the read-only discount preview. It evaluates the
// same rules as the booking transaction but never consumes a use, so the
// preview can still fail at booking time if the quota runs out in between.
type CouponService struct {
	couponRepo *database.CouponRepository
	logger     *logrus.Logger
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo *database.CouponRepository, logger *logrus.Logger) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// ValidateCoupon quotes the discount a coupon would give on a total
func (s *CouponService) ValidateCoupon(code string, totalAmount float64) (*models.CouponQuote, error) {
	coupon, err := s.couponRepo.GetCouponByCode(code)
	if err != nil {
		return nil, err
	}

	if !coupon.IsCurrentlyValid(time.Now()) {
		return nil, models.ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return nil, models.ErrCouponExhausted
	}

	quote, err := coupon.Quote(totalAmount)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"coupon_code":     code,
		"total_amount":    totalAmount,
		"discount_amount": quote.DiscountAmount,
	}).Debug("Coupon quoted")

	return quote, nil
}
