package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSeatsBySchedule(t *testing.T) {
	t.Run("Materializes Grid On First Read", func(t *testing.T) {
		sqlxDB, mock := newMockSqlxDB(t)
		repo := NewSeatRepository(sqlxDB)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bus_schedules`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats WHERE schedule_id`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		// rows A-J by columns 1-4
		for _, row := range models.SeatRows {
			for col := 1; col <= models.SeatColumns; col++ {
				mock.ExpectExec(`INSERT INTO seats`).
					WithArgs(7, row+string(rune('0'+col)), row, col, models.SeatTypeFor(col)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			}
		}

		seatRows := sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "seat_row", "seat_column", "seat_type", "status"})
		id := 1
		for _, row := range models.SeatRows {
			for col := 1; col <= models.SeatColumns; col++ {
				seatRows.AddRow(id, 7, row+string(rune('0'+col)), row, col, models.SeatTypeFor(col), "available")
				id++
			}
		}
		mock.ExpectQuery(`SELECT id, schedule_id, seat_number, seat_row, seat_column, seat_type, status FROM seats`).
			WithArgs(7).
			WillReturnRows(seatRows)

		seats, err := repo.GetSeatsBySchedule(7)
		require.NoError(t, err)
		assert.Len(t, seats, models.SeatGridTotal)
		assert.Equal(t, "A1", seats[0].SeatNumber)
		assert.Equal(t, "window", seats[0].SeatType)
		assert.Equal(t, "aisle", seats[1].SeatType)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Grid Already Present", func(t *testing.T) {
		sqlxDB, mock := newMockSqlxDB(t)
		repo := NewSeatRepository(sqlxDB)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bus_schedules`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats WHERE schedule_id`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
		mock.ExpectQuery(`SELECT id, schedule_id, seat_number, seat_row, seat_column, seat_type, status FROM seats`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "seat_row", "seat_column", "seat_type", "status"}).
				AddRow(1, 7, "A1", "A", 1, "window", "booked"))

		seats, err := repo.GetSeatsBySchedule(7)
		require.NoError(t, err)
		require.Len(t, seats, 1)
		assert.Equal(t, models.SeatStatusBooked, seats[0].Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Schedule Not Found", func(t *testing.T) {
		sqlxDB, mock := newMockSqlxDB(t)
		repo := NewSeatRepository(sqlxDB)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bus_schedules`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		seats, err := repo.GetSeatsBySchedule(99)
		assert.ErrorIs(t, err, models.ErrScheduleNotFound)
		assert.Nil(t, seats)
	})
}

func TestSeatTypeFor(t *testing.T) {
	assert.Equal(t, "window", models.SeatTypeFor(1))
	assert.Equal(t, "aisle", models.SeatTypeFor(2))
	assert.Equal(t, "aisle", models.SeatTypeFor(3))
	assert.Equal(t, "window", models.SeatTypeFor(4))
}
