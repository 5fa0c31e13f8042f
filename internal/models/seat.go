package models

import "time"

// SeatStatus represents the booking state of a seat
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
)

// Seat layout constants. Every bus carries the same fixed grid of
// 10 rows (A-J) by 4 columns, 40 seats total.
var SeatRows = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

const (
	SeatColumns   = 4
	SeatGridTotal = 40
)

// Seat is one position in a schedule's seat grid. seat_number is unique
// within the owning schedule.
type Seat struct {
	ID         int        `json:"id" db:"id"`
	ScheduleID int        `json:"schedule_id" db:"schedule_id"`
	SeatNumber string     `json:"seat_number" db:"seat_number"`
	SeatRow    string     `json:"seat_row" db:"seat_row"`
	SeatColumn int        `json:"seat_column" db:"seat_column"`
	SeatType   string     `json:"seat_type" db:"seat_type"` // window or aisle
	Status     SeatStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// SeatTypeFor returns window for the outer columns and aisle for the
// inner ones, matching the fixed 2+2 layout.
func SeatTypeFor(column int) string {
	if column == 1 || column == SeatColumns {
		return "window"
	}
	return "aisle"
}
