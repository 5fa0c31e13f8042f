package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/jagatbilash/bus-booking-backend/internal/services"
)

// CouponHandler handles coupon preview and admin CRUD
type CouponHandler struct {
	couponService *services.CouponService
	couponRepo    *database.CouponRepository
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *services.CouponService, couponRepo *database.CouponRepository) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		couponRepo:    couponRepo,
	}
}

// ValidateCoupon quotes the discount a coupon would give on a total.
// Read-only: no usage is consumed, so the coupon can still be exhausted
// by the time the booking is submitted.
// @Summary Validate a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body models.ValidateCouponRequest true "Coupon code and order total"
// @Success 200 {object} map[string]interface{} "Discount quote"
// @Failure 400 {object} map[string]interface{} "Coupon rejected"
// @Failure 404 {object} map[string]interface{} "Unknown coupon code"
// @Router /api/v1/coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	quote, err := h.couponService.ValidateCoupon(req.CouponCode, req.TotalAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   quote,
	})
}

// ListCoupons returns all coupons
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.couponRepo.ListCoupons()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   coupons,
	})
}

// CreateCoupon adds a new coupon
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	coupon, err := h.couponRepo.CreateCoupon(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Coupon created successfully",
		"data":    coupon,
	})
}

// UpdateCouponStatus flips a coupon between active and inactive
func (h *CouponHandler) UpdateCouponStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid coupon ID",
		})
		return
	}

	var req struct {
		Status models.CouponStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.Status != models.CouponStatusActive && req.Status != models.CouponStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Status must be active or inactive",
		})
		return
	}

	if err := h.couponRepo.UpdateCouponStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Coupon status updated",
	})
}

// DeleteCoupon removes a coupon
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid coupon ID",
		})
		return
	}

	if err := h.couponRepo.DeleteCoupon(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Coupon deleted successfully",
	})
}
