package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/services"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCouponRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	couponRepo := database.NewCouponRepository(&database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")})
	couponService := services.NewCouponService(couponRepo, logger)
	handler := NewCouponHandler(couponService, couponRepo)

	router := gin.New()
	router.POST("/api/v1/coupons/validate", handler.ValidateCoupon)
	return router, mock
}

func expectCouponRow(mock sqlmock.Sqlmock, code string, pct float64, cap interface{}, minSpend float64, usageLimit, usedCount int, status string) {
	mock.ExpectQuery(`SELECT (.+) FROM coupons WHERE coupon_code`).
		WithArgs(code).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "coupon_code", "discount_percentage", "max_discount_amount",
			"min_booking_amount", "usage_limit", "used_count",
			"valid_from", "valid_until", "status", "created_at",
		}).AddRow(
			1, code, pct, cap,
			minSpend, usageLimit, usedCount,
			time.Now().AddDate(0, 0, -7), time.Now().AddDate(0, 0, 7), status, time.Now(),
		))
}

func TestValidateCouponEndpoint(t *testing.T) {
	t.Run("Quote With Cap", func(t *testing.T) {
		router, mock := setupCouponRouter(t)
		expectCouponRow(mock, "SUMMER20", 20, 300.0, 1000, 100, 10, "active")

		w := postJSON(router, "/api/v1/coupons/validate", map[string]interface{}{
			"coupon_code":  "SUMMER20",
			"total_amount": 2000,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"discount_amount":300`)
		assert.Contains(t, w.Body.String(), `"final_amount":1700`)
	})

	t.Run("Below Minimum Returns 400", func(t *testing.T) {
		router, mock := setupCouponRouter(t)
		expectCouponRow(mock, "WELCOME10", 10, nil, 1500, 100, 0, "active")

		w := postJSON(router, "/api/v1/coupons/validate", map[string]interface{}{
			"coupon_code":  "WELCOME10",
			"total_amount": 850,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "below the coupon minimum")
	})

	t.Run("Exhausted Returns 400", func(t *testing.T) {
		router, mock := setupCouponRouter(t)
		expectCouponRow(mock, "SUMMER20", 20, 300.0, 1000, 100, 100, "active")

		w := postJSON(router, "/api/v1/coupons/validate", map[string]interface{}{
			"coupon_code":  "SUMMER20",
			"total_amount": 2000,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "usage limit")
	})

	t.Run("Inactive Returns 400", func(t *testing.T) {
		router, mock := setupCouponRouter(t)
		expectCouponRow(mock, "OLD5", 5, nil, 0, 100, 0, "inactive")

		w := postJSON(router, "/api/v1/coupons/validate", map[string]interface{}{
			"coupon_code":  "OLD5",
			"total_amount": 2000,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not currently valid")
	})

	t.Run("Unknown Code Returns 404", func(t *testing.T) {
		router, mock := setupCouponRouter(t)
		mock.ExpectQuery(`SELECT (.+) FROM coupons WHERE coupon_code`).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := postJSON(router, "/api/v1/coupons/validate", map[string]interface{}{
			"coupon_code":  "NOPE",
			"total_amount": 2000,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
