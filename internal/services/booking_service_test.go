package services

import (
	"testing"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		ScheduleID:     7,
		PassengerName:  "Rahim Uddin",
		PassengerPhone: "01712345678",
		SelectedSeats:  []string{"A1", "A2"},
	}
}

// Validation failures must never reach the repository, so a nil repo is
// enough for these cases.
func newValidationOnlyService() *BookingService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewBookingService(nil, logger)
}

func TestBookingValidation(t *testing.T) {
	svc := newValidationOnlyService()

	t.Run("No Seats", func(t *testing.T) {
		req := validBookingRequest()
		req.SelectedSeats = nil

		_, err := svc.CreateBooking(req)
		var valErr *models.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, err.Error(), "at least one seat")
	})

	t.Run("Too Many Seats", func(t *testing.T) {
		req := validBookingRequest()
		req.SelectedSeats = []string{
			"A1", "A2", "A3", "A4", "B1", "B2", "B3", "B4", "C1", "C2", "C3",
		}

		_, err := svc.CreateBooking(req)
		var valErr *models.ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("Invalid Seat Label", func(t *testing.T) {
		for _, seat := range []string{"K1", "A5", "A0", "AA", "1A", ""} {
			req := validBookingRequest()
			req.SelectedSeats = []string{seat}

			_, err := svc.CreateBooking(req)
			var valErr *models.ValidationError
			require.ErrorAs(t, err, &valErr, "seat %q should be rejected", seat)
		}
	})

	t.Run("Duplicate Seats", func(t *testing.T) {
		req := validBookingRequest()
		req.SelectedSeats = []string{"A1", "A1"}

		_, err := svc.CreateBooking(req)
		var valErr *models.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, err.Error(), "duplicate seat")
	})

	t.Run("Lowercase Seat Normalized Then Duplicate Detected", func(t *testing.T) {
		req := validBookingRequest()
		req.SelectedSeats = []string{"a1", "A1"}

		_, err := svc.CreateBooking(req)
		var valErr *models.ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("Invalid Phone", func(t *testing.T) {
		for _, phone := range []string{"", "12345", "0171234567", "021712345678", "01X12345678"} {
			req := validBookingRequest()
			req.PassengerPhone = phone

			_, err := svc.CreateBooking(req)
			var valErr *models.ValidationError
			require.ErrorAs(t, err, &valErr, "phone %q should be rejected", phone)
		}
	})
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	svc := newValidationOnlyService()

	err := svc.UpdateBookingStatus(1, models.BookingStatus("shipped"))
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "invalid booking status")
}
