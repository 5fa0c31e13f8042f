package services

import (
	"strings"

	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/jagatbilash/bus-booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// MaxSeatsPerBooking caps one booking to a reasonable group size
const MaxSeatsPerBooking = 10

// BookingService validates booking requests and delegates the atomic
// write to the repository. Validation failures never touch the database.
type BookingService struct {
	bookingRepo *database.BookingRepository
	logger      *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo *database.BookingRepository, logger *logrus.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateBooking validates the request and runs the booking transaction
func (s *BookingService) CreateBooking(req *models.CreateBookingRequest) (*models.BookingResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.bookingRepo.CreateBooking(req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"schedule_id": req.ScheduleID,
			"phone":       req.PassengerPhone,
			"seats":       req.SelectedSeats,
			"error":       err.Error(),
		}).Warn("Booking failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_reference": result.BookingReference,
		"schedule_id":       req.ScheduleID,
		"seats":             result.SelectedSeats,
		"final_amount":      result.FinalAmount,
	}).Info("Booking confirmed")

	return result, nil
}

func (s *BookingService) validateRequest(req *models.CreateBookingRequest) error {
	if len(req.SelectedSeats) == 0 {
		return models.NewValidationError("at least one seat must be selected")
	}
	if len(req.SelectedSeats) > MaxSeatsPerBooking {
		return models.NewValidationError("cannot book more than %d seats at once", MaxSeatsPerBooking)
	}

	if !validator.IsValidPhone(req.PassengerPhone) {
		return models.NewValidationError("invalid phone number: %s", req.PassengerPhone)
	}

	seen := make(map[string]bool, len(req.SelectedSeats))
	for i, seat := range req.SelectedSeats {
		seat = strings.ToUpper(strings.TrimSpace(seat))
		if !validator.IsValidSeatNumber(seat) {
			return models.NewValidationError("invalid seat number: %s", req.SelectedSeats[i])
		}
		if seen[seat] {
			return models.NewValidationError("duplicate seat number: %s", seat)
		}
		seen[seat] = true
		req.SelectedSeats[i] = seat
	}

	return nil
}

// ListBookings returns all bookings for the admin dashboard
func (s *BookingService) ListBookings() ([]models.BookingListItem, error) {
	return s.bookingRepo.ListBookings()
}

// GetBooking returns a single booking by ID
func (s *BookingService) GetBooking(id int) (*models.Booking, error) {
	return s.bookingRepo.GetBookingByID(id)
}

// UpdateBookingStatus changes a booking's lifecycle state
func (s *BookingService) UpdateBookingStatus(bookingID int, status models.BookingStatus) error {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return models.NewValidationError("invalid booking status: %s", status)
	}
	return s.bookingRepo.UpdateBookingStatus(bookingID, status)
}

// DeleteBooking removes a booking and releases its seats
func (s *BookingService) DeleteBooking(bookingID int) error {
	err := s.bookingRepo.DeleteBooking(bookingID)
	if err != nil {
		return err
	}
	s.logger.WithField("booking_id", bookingID).Info("Booking deleted, seats released")
	return nil
}
