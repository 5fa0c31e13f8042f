package database

import (
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/jmoiron/sqlx"
)

// SeatRepository handles seat database operations
type SeatRepository struct {
	db *sqlx.DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db *sqlx.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// ensureSeatGrid materializes the 40-seat layout (rows A-J, columns 1-4)
// for a schedule on first touch. ON CONFLICT makes it safe to call from
// concurrent transactions: existing rows, and their statuses, are never
// overwritten.
func ensureSeatGrid(e sqlx.Ext, scheduleID int) error {
	var count int
	err := sqlx.Get(e, &count, `SELECT COUNT(*) FROM seats WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to count seats: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, row := range models.SeatRows {
		for col := 1; col <= models.SeatColumns; col++ {
			seatNumber := fmt.Sprintf("%s%d", row, col)
			_, err := e.Exec(`
				INSERT INTO seats (schedule_id, seat_number, seat_row, seat_column, seat_type, status)
				VALUES ($1, $2, $3, $4, $5, 'available')
				ON CONFLICT (schedule_id, seat_number) DO NOTHING`,
				scheduleID, seatNumber, row, col, models.SeatTypeFor(col))
			if err != nil {
				return fmt.Errorf("failed to create seat %s: %w", seatNumber, err)
			}
		}
	}
	return nil
}

// GetSeatsBySchedule returns the full seat map for a schedule, creating
// the grid first if the schedule has never been touched.
func (r *SeatRepository) GetSeatsBySchedule(scheduleID int) ([]models.Seat, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM bus_schedules WHERE id = $1)`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if !exists {
		return nil, models.ErrScheduleNotFound
	}

	if err := ensureSeatGrid(r.db, scheduleID); err != nil {
		return nil, err
	}

	var seats []models.Seat
	err = r.db.Select(&seats, `
		SELECT id, schedule_id, seat_number, seat_row, seat_column, seat_type, status
		FROM seats
		WHERE schedule_id = $1
		ORDER BY seat_number`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}
	return seats, nil
}
