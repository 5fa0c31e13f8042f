package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/services"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	bookingRepo := database.NewBookingRepository(sqlx.NewDb(db, "sqlmock"))
	bookingService := services.NewBookingService(bookingRepo, logger)
	handler := NewBookingHandler(bookingService, logger)

	router := gin.New()
	router.POST("/api/v1/bookings", handler.CreateBooking)
	return router, mock
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingEndpoint(t *testing.T) {
	body := func() map[string]interface{} {
		return map[string]interface{}{
			"schedule_id":     7,
			"passenger_name":  "Rahim Uddin",
			"passenger_phone": "01712345678",
			"selected_seats":  []string{"A1", "A2"},
		}
	}

	t.Run("Confirmed", func(t *testing.T) {
		router, mock := setupBookingRouter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE booking_reference`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, fare_amount, available_seats, status FROM bus_schedules`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "fare_amount", "available_seats", "status"}).
				AddRow(7, 850.0, 40, "active"))
		mock.ExpectQuery(`SELECT id FROM users WHERE phone`).
			WithArgs("01712345678").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats WHERE schedule_id`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
		for i, seat := range []string{"A1", "A2"} {
			mock.ExpectQuery(`UPDATE seats SET status = 'booked'`).
				WithArgs(7, seat).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101 + i))
			mock.ExpectExec(`INSERT INTO booking_seats`).
				WillReturnResult(sqlmock.NewResult(1, 1))
		}
		mock.ExpectExec(`UPDATE bus_schedules SET available_seats`).
			WithArgs(2, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w := postJSON(router, "/api/v1/bookings", body())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"success"`)
		assert.Contains(t, w.Body.String(), `"total_amount":1700`)
		assert.Contains(t, w.Body.String(), `"booking_reference":"BK-`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Conflict Returns 409", func(t *testing.T) {
		router, mock := setupBookingRouter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE booking_reference`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, fare_amount, available_seats, status FROM bus_schedules`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "fare_amount", "available_seats", "status"}).
				AddRow(7, 850.0, 40, "active"))
		mock.ExpectQuery(`SELECT id FROM users WHERE phone`).
			WithArgs("01712345678").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats WHERE schedule_id`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
		mock.ExpectQuery(`UPDATE seats SET status = 'booked'`).
			WithArgs(7, "A1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		w := postJSON(router, "/api/v1/bookings", body())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "seat A1 is not available")
	})

	t.Run("Unknown Schedule Returns 404", func(t *testing.T) {
		router, mock := setupBookingRouter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE booking_reference`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, fare_amount, available_seats, status FROM bus_schedules`).
			WithArgs(7).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		w := postJSON(router, "/api/v1/bookings", body())

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "schedule not found")
	})

	t.Run("Invalid Seat Returns 400", func(t *testing.T) {
		router, _ := setupBookingRouter(t)

		payload := body()
		payload["selected_seats"] = []string{"Z9"}
		w := postJSON(router, "/api/v1/bookings", payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid seat number")
	})

	t.Run("Missing Fields Returns 400", func(t *testing.T) {
		router, _ := setupBookingRouter(t)

		w := postJSON(router, "/api/v1/bookings", map[string]interface{}{
			"schedule_id": 7,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})
}
