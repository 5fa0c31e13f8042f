package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// CouponRepository handles coupon database operations. Side-effecting
// coupon application lives in the booking transaction; everything here
// is read-only lookup or admin CRUD.
type CouponRepository struct {
	db DB
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(db DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetCouponByCode retrieves a coupon by its code
func (r *CouponRepository) GetCouponByCode(code string) (*models.Coupon, error) {
	coupon := &models.Coupon{}
	err := r.db.Get(coupon, `
		SELECT id, coupon_code, discount_percentage, max_discount_amount,
		       min_booking_amount, usage_limit, used_count,
		       valid_from, valid_until, status, created_at
		FROM coupons WHERE coupon_code = $1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to fetch coupon: %w", err)
	}
	return coupon, nil
}

// ListCoupons returns all coupons, newest first
func (r *CouponRepository) ListCoupons() ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Select(&coupons, `
		SELECT id, coupon_code, discount_percentage, max_discount_amount,
		       min_booking_amount, usage_limit, used_count,
		       valid_from, valid_until, status, created_at
		FROM coupons
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon inserts a new coupon. Codes are unique.
func (r *CouponRepository) CreateCoupon(req *models.CreateCouponRequest) (*models.Coupon, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM coupons WHERE coupon_code = $1`, req.CouponCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return nil, models.ErrCouponExists
	}

	usageLimit := req.UsageLimit
	if usageLimit <= 0 {
		usageLimit = 100
	}
	status := req.Status
	if status == "" {
		status = string(models.CouponStatusActive)
	}
	var validFrom *string
	if req.ValidFrom != "" {
		validFrom = &req.ValidFrom
	}

	coupon := &models.Coupon{}
	err = r.db.Get(coupon, `
		INSERT INTO coupons (coupon_code, discount_percentage, max_discount_amount,
		                     min_booking_amount, usage_limit, valid_from, valid_until, status)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::date, CURRENT_DATE), $7, $8)
		RETURNING id, coupon_code, discount_percentage, max_discount_amount,
		          min_booking_amount, usage_limit, used_count,
		          valid_from, valid_until, status, created_at`,
		req.CouponCode, req.DiscountPercentage, req.MaxDiscountAmount,
		req.MinBookingAmount, usageLimit, validFrom, req.ValidUntil, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

// UpdateCouponStatus flips a coupon between active and inactive
func (r *CouponRepository) UpdateCouponStatus(id int, status models.CouponStatus) error {
	result, err := r.db.Exec(`UPDATE coupons SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update coupon status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrCouponNotFound
	}
	return nil
}

// DeleteCoupon removes a coupon
func (r *CouponRepository) DeleteCoupon(id int) error {
	result, err := r.db.Exec(`DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrCouponNotFound
	}
	return nil
}
