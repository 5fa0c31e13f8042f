package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// respondError maps domain errors to HTTP status codes. Not-found errors
// become 404, seat conflicts 409, coupon and validation rejections 400,
// anything unrecognized 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var seatErr *models.SeatUnavailableError
	var refErr *models.ReferencedError
	var valErr *models.ValidationError

	switch {
	case errors.Is(err, models.ErrScheduleNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrRouteNotFound),
		errors.Is(err, models.ErrBusNotFound),
		errors.Is(err, models.ErrCouponNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})

	case errors.As(err, &seatErr):
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})

	case errors.As(err, &refErr), errors.As(err, &valErr),
		errors.Is(err, models.ErrScheduleCancelled),
		errors.Is(err, models.ErrCouponExpired),
		errors.Is(err, models.ErrCouponBelowMinimum),
		errors.Is(err, models.ErrCouponExhausted),
		errors.Is(err, models.ErrEmailExists),
		errors.Is(err, models.ErrPhoneExists),
		errors.Is(err, models.ErrBusNumberExists),
		errors.Is(err, models.ErrCouponExists):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}
