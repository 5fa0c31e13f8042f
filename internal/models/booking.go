package models

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a confirmed purchase of one or more seats on one schedule.
// Passenger fields are a snapshot taken at booking time, independent of
// the linked user record. final_amount = total_amount - discount_amount.
type Booking struct {
	ID               int           `json:"id" db:"id"`
	BookingReference string        `json:"booking_reference" db:"booking_reference"`
	UserID           int           `json:"user_id" db:"user_id"`
	ScheduleID       int           `json:"schedule_id" db:"schedule_id"`
	PassengerName    string        `json:"passenger_name" db:"passenger_name"`
	PassengerPhone   string        `json:"passenger_phone" db:"passenger_phone"`
	PassengerEmail   *string       `json:"passenger_email,omitempty" db:"passenger_email"`
	TotalAmount      float64       `json:"total_amount" db:"total_amount"`
	DiscountAmount   float64       `json:"discount_amount" db:"discount_amount"`
	FinalAmount      float64       `json:"final_amount" db:"final_amount"`
	BookingStatus    BookingStatus `json:"booking_status" db:"booking_status"`
	BookingDate      time.Time     `json:"booking_date" db:"booking_date"`
}

// CreateBookingRequest is the public booking payload
type CreateBookingRequest struct {
	ScheduleID     int      `json:"schedule_id" binding:"required"`
	PassengerName  string   `json:"passenger_name" binding:"required"`
	PassengerPhone string   `json:"passenger_phone" binding:"required"`
	PassengerEmail *string  `json:"passenger_email"`
	SelectedSeats  []string `json:"selected_seats" binding:"required"`
	CouponCode     *string  `json:"coupon_code"`
}

// BookingResult is returned on a committed booking
type BookingResult struct {
	BookingID        int      `json:"booking_id"`
	BookingReference string   `json:"booking_reference"`
	TotalAmount      float64  `json:"total_amount"`
	DiscountAmount   float64  `json:"discount_amount"`
	FinalAmount      float64  `json:"final_amount"`
	SelectedSeats    []string `json:"selected_seats"`
}

// BookingListItem is the admin dashboard row: booking amounts plus the
// route label and an aggregated seat list.
type BookingListItem struct {
	ID             int           `json:"id" db:"id"`
	PassengerName  string        `json:"passenger_name" db:"passenger_name"`
	PassengerPhone string        `json:"passenger_phone" db:"passenger_phone"`
	PassengerEmail *string       `json:"passenger_email,omitempty" db:"passenger_email"`
	TotalAmount    float64       `json:"total_amount" db:"total_amount"`
	DiscountAmount float64       `json:"discount_amount" db:"discount_amount"`
	FinalAmount    float64       `json:"final_amount" db:"final_amount"`
	BookingStatus  BookingStatus `json:"booking_status" db:"booking_status"`
	BookingDate    time.Time     `json:"booking_date" db:"booking_date"`
	Route          *string       `json:"route,omitempty" db:"route"`
	Seats          *string       `json:"seats,omitempty" db:"seats"`
}

// UpdateBookingStatusRequest is the admin payload for a status change
type UpdateBookingStatusRequest struct {
	BookingID int           `json:"booking_id" binding:"required"`
	Status    BookingStatus `json:"status" binding:"required"`
}
