package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/jmoiron/sqlx"
)

// BookingRepository handles booking database operations. The booking
// write path is a single transaction: every mutation it makes (coupon
// usage, guest user, booking, seats, available_seats) commits or rolls
// back as one unit.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GenerateBookingReference generates a unique booking reference.
// Format: BK-YYYYMMDD-XXXXXX (6 char hex)
func (r *BookingRepository) GenerateBookingReference() (string, error) {
	todayStr := time.Now().Format("20060102")

	for attempts := 0; attempts < 10; attempts++ {
		randomBytes := make([]byte, 3)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		randomStr := strings.ToUpper(hex.EncodeToString(randomBytes))

		newRef := fmt.Sprintf("BK-%s-%s", todayStr, randomStr)

		var count int
		err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE booking_reference = $1`, newRef)
		if err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}

		if count == 0 {
			return newRef, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique booking reference after 10 attempts")
}

// scheduleRow is the locked schedule snapshot used inside the booking
// transaction.
type scheduleRow struct {
	ID             int     `db:"id"`
	FareAmount     float64 `db:"fare_amount"`
	AvailableSeats int     `db:"available_seats"`
	Status         string  `db:"status"`
}

// CreateBooking runs the whole booking sequence as one transaction:
// schedule lookup, fare computation, coupon application, guest user
// resolution, booking insert, seat reservation and available_seats
// decrement. Any failure at any step rolls back all of it.
func (r *BookingRepository) CreateBooking(req *models.CreateBookingRequest) (*models.BookingResult, error) {
	bookingRef, err := r.GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Lock the schedule row; concurrent bookings on the same schedule
	// serialize here for the seat-count decrement.
	var schedule scheduleRow
	err = tx.Get(&schedule, `
		SELECT id, fare_amount, available_seats, status
		FROM bus_schedules
		WHERE id = $1
		FOR UPDATE`, req.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule.Status != string(models.ScheduleStatusActive) {
		return nil, models.ErrScheduleCancelled
	}

	totalAmount := schedule.FareAmount * float64(len(req.SelectedSeats))
	discountAmount := 0.0
	finalAmount := totalAmount

	// 2. Apply coupon if provided. Rejection aborts the booking; the
	// caller may resubmit without the code.
	if req.CouponCode != nil && *req.CouponCode != "" {
		quote, err := r.applyCoupon(tx, *req.CouponCode, totalAmount)
		if err != nil {
			return nil, err
		}
		discountAmount = quote.DiscountAmount
		finalAmount = quote.FinalAmount
	}

	// 3. Resolve user: find by passenger phone, create a guest record if
	// none exists. Phone is the natural key for guest identity.
	userID, err := r.findOrCreateUser(tx, req)
	if err != nil {
		return nil, err
	}

	// 4. Insert the booking with a passenger snapshot.
	var bookingID int
	err = tx.QueryRowx(`
		INSERT INTO bookings (
			booking_reference, user_id, schedule_id,
			passenger_name, passenger_phone, passenger_email,
			total_amount, discount_amount, final_amount, booking_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'confirmed')
		RETURNING id`,
		bookingRef, userID, req.ScheduleID,
		req.PassengerName, req.PassengerPhone, req.PassengerEmail,
		totalAmount, discountAmount, finalAmount,
	).Scan(&bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// 5. Claim each seat with an update-with-precondition; zero rows
	// means another booking holds it.
	if err := ensureSeatGrid(tx, req.ScheduleID); err != nil {
		return nil, err
	}
	for _, seatNumber := range req.SelectedSeats {
		var seatID int
		err = tx.QueryRowx(`
			UPDATE seats
			SET status = 'booked'
			WHERE schedule_id = $1 AND seat_number = $2 AND status = 'available'
			RETURNING id`,
			req.ScheduleID, seatNumber,
		).Scan(&seatID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &models.SeatUnavailableError{SeatNumber: seatNumber}
			}
			return nil, fmt.Errorf("failed to reserve seat %s: %w", seatNumber, err)
		}

		_, err = tx.Exec(`INSERT INTO booking_seats (booking_id, seat_id) VALUES ($1, $2)`,
			bookingID, seatID)
		if err != nil {
			return nil, fmt.Errorf("failed to link seat %s: %w", seatNumber, err)
		}
	}

	// 6. Decrement the seat counter, guarded so it can never go negative.
	result, err := tx.Exec(`
		UPDATE bus_schedules
		SET available_seats = available_seats - $1
		WHERE id = $2 AND available_seats >= $1`,
		len(req.SelectedSeats), req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to update available seats: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, &models.SeatUnavailableError{SeatNumber: req.SelectedSeats[0]}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BookingResult{
		BookingID:        bookingID,
		BookingReference: bookingRef,
		TotalAmount:      totalAmount,
		DiscountAmount:   discountAmount,
		FinalAmount:      finalAmount,
		SelectedSeats:    req.SelectedSeats,
	}, nil
}

// applyCoupon locks the coupon row, evaluates it against the order total
// and consumes one use. The used_count increment is guarded by the usage
// limit in the UPDATE predicate, not by a prior read.
func (r *BookingRepository) applyCoupon(tx *sqlx.Tx, code string, totalAmount float64) (*models.CouponQuote, error) {
	var coupon models.Coupon
	err := tx.Get(&coupon, `
		SELECT id, coupon_code, discount_percentage, max_discount_amount,
		       min_booking_amount, usage_limit, used_count,
		       valid_from, valid_until, status, created_at
		FROM coupons
		WHERE coupon_code = $1
		FOR UPDATE`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if !coupon.IsCurrentlyValid(time.Now()) {
		return nil, models.ErrCouponExpired
	}

	quote, err := coupon.Quote(totalAmount)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE id = $1 AND used_count < usage_limit`,
		coupon.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon usage: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, models.ErrCouponExhausted
	}

	return quote, nil
}

// findOrCreateUser resolves the passenger to a user row by phone,
// creating a guest record (no password) on first booking.
func (r *BookingRepository) findOrCreateUser(tx *sqlx.Tx, req *models.CreateBookingRequest) (int, error) {
	var userID int
	err := tx.Get(&userID, `SELECT id FROM users WHERE phone = $1`, req.PassengerPhone)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	err = tx.QueryRowx(`
		INSERT INTO users (name, email, phone) VALUES ($1, $2, $3)
		RETURNING id`,
		req.PassengerName, req.PassengerEmail, req.PassengerPhone,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create guest user: %w", err)
	}
	return userID, nil
}

// ============================================================================
// ADMIN OPERATIONS
// ============================================================================

// ListBookings retrieves all bookings with route labels and aggregated
// seat numbers, newest first.
func (r *BookingRepository) ListBookings() ([]models.BookingListItem, error) {
	query := `
		SELECT
			b.id, b.passenger_name, b.passenger_phone, b.passenger_email,
			b.total_amount, b.discount_amount, b.final_amount,
			b.booking_status, b.booking_date,
			r.from_location || ' - ' || r.to_location AS route,
			string_agg(s.seat_number, ', ' ORDER BY s.seat_number) AS seats
		FROM bookings b
		LEFT JOIN bus_schedules bs ON b.schedule_id = bs.id
		LEFT JOIN routes r ON bs.route_id = r.id
		LEFT JOIN booking_seats bs2 ON b.id = bs2.booking_id
		LEFT JOIN seats s ON bs2.seat_id = s.id
		GROUP BY b.id, r.from_location, r.to_location
		ORDER BY b.booking_date DESC`

	var bookings []models.BookingListItem
	err := r.db.Select(&bookings, query)
	return bookings, err
}

// GetBookingByID retrieves a single booking
func (r *BookingRepository) GetBookingByID(id int) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.db.Get(booking, `
		SELECT id, booking_reference, user_id, schedule_id,
		       passenger_name, passenger_phone, passenger_email,
		       total_amount, discount_amount, final_amount,
		       booking_status, booking_date
		FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus changes a booking's status
func (r *BookingRepository) UpdateBookingStatus(bookingID int, status models.BookingStatus) error {
	result, err := r.db.Exec(`UPDATE bookings SET booking_status = $1 WHERE id = $2`,
		status, bookingID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// DeleteBooking removes a booking, releasing its seats and restoring the
// schedule's seat counter in the same transaction.
func (r *BookingRepository) DeleteBooking(bookingID int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var scheduleID int
	err = tx.Get(&scheduleID, `SELECT schedule_id FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrBookingNotFound
		}
		return fmt.Errorf("failed to fetch booking: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE seats
		SET status = 'available'
		WHERE id IN (SELECT seat_id FROM booking_seats WHERE booking_id = $1)
		  AND status = 'booked'`,
		bookingID)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}
	released, _ := result.RowsAffected()

	if released > 0 {
		_, err = tx.Exec(`
			UPDATE bus_schedules
			SET available_seats = available_seats + $1
			WHERE id = $2`,
			released, scheduleID)
		if err != nil {
			return fmt.Errorf("failed to restore available seats: %w", err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM booking_seats WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking seats: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM bookings WHERE id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return tx.Commit()
}
