package models

import (
	"errors"
	"fmt"
)

// Booking flow errors. Handlers map these to HTTP status codes; anything
// not in this list is treated as a persistence failure.
var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleCancelled = errors.New("schedule is cancelled")

	ErrCouponNotFound     = errors.New("invalid or expired coupon code")
	ErrCouponExpired      = errors.New("coupon is not currently valid")
	ErrCouponBelowMinimum = errors.New("booking amount is below the coupon minimum")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")

	ErrBookingNotFound = errors.New("booking not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrBusNotFound     = errors.New("bus not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrEmailExists     = errors.New("email already exists")
	ErrPhoneExists     = errors.New("phone number already registered")
	ErrBusNumberExists = errors.New("bus number already exists")
	ErrCouponExists    = errors.New("coupon code already exists")
)

// SeatUnavailableError names the first requested seat that could not be
// claimed. The whole booking transaction aborts when it is returned.
type SeatUnavailableError struct {
	SeatNumber string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat %s is not available", e.SeatNumber)
}

// ReferencedError signals a delete blocked by dependent rows.
type ReferencedError struct {
	Entity string
	Count  int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d dependent record(s) reference it", e.Entity, e.Count)
}

// ValidationError is rejected before any persistence attempt.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
