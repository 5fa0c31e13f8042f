package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// SearchSchedules returns active schedules joined with bus and route
// details. All filters are optional; the date filter is a lower bound
// and defaults to today so past trips never show up in search.
func (r *ScheduleRepository) SearchSchedules(routeID int, from, to, date string) ([]models.ScheduleSearchResult, error) {
	query := `
		SELECT
			bs.id, TO_CHAR(bs.departure_date, 'YYYY-MM-DD') AS departure_date,
			bs.departure_time, bs.fare_amount, bs.available_seats, bs.status,
			b.bus_name, b.bus_number, b.bus_type, b.total_seats,
			r.from_location, r.to_location, r.distance_km
		FROM bus_schedules bs
		JOIN buses b ON bs.bus_id = b.id
		JOIN routes r ON bs.route_id = r.id
		WHERE bs.status = 'active'`

	args := []interface{}{}
	argPos := 1

	if routeID > 0 {
		query += fmt.Sprintf(" AND bs.route_id = $%d", argPos)
		args = append(args, routeID)
		argPos++
	}
	if from != "" {
		query += fmt.Sprintf(" AND r.from_location ILIKE $%d", argPos)
		args = append(args, from)
		argPos++
	}
	if to != "" {
		query += fmt.Sprintf(" AND r.to_location ILIKE $%d", argPos)
		args = append(args, to)
		argPos++
	}
	if date == "" {
		query += " AND bs.departure_date >= CURRENT_DATE"
	} else {
		query += fmt.Sprintf(" AND bs.departure_date >= $%d", argPos)
		args = append(args, date)
		argPos++
	}

	query += " ORDER BY bs.departure_date, bs.departure_time"

	var schedules []models.ScheduleSearchResult
	err := r.db.Select(&schedules, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search schedules: %w", err)
	}
	return schedules, nil
}

// ListSchedules returns every schedule regardless of status for the
// admin dashboard, newest departure first.
func (r *ScheduleRepository) ListSchedules() ([]models.ScheduleSearchResult, error) {
	var schedules []models.ScheduleSearchResult
	err := r.db.Select(&schedules, `
		SELECT
			bs.id, TO_CHAR(bs.departure_date, 'YYYY-MM-DD') AS departure_date,
			bs.departure_time, bs.fare_amount, bs.available_seats, bs.status,
			b.bus_name, b.bus_number, b.bus_type, b.total_seats,
			r.from_location, r.to_location, r.distance_km
		FROM bus_schedules bs
		JOIN buses b ON bs.bus_id = b.id
		JOIN routes r ON bs.route_id = r.id
		ORDER BY bs.departure_date DESC, bs.departure_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// GetScheduleByID retrieves a single schedule
func (r *ScheduleRepository) GetScheduleByID(id int) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `
		SELECT id, bus_id, route_id, departure_date, departure_time,
		       fare_amount, available_seats, status, created_at
		FROM bus_schedules WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return schedule, nil
}

// CreateSchedule inserts a new schedule. The seat inventory starts at the
// bus's total seat count; the seat grid itself is materialized lazily on
// first seat-map read or booking.
func (r *ScheduleRepository) CreateSchedule(req *models.CreateScheduleRequest) (*models.Schedule, error) {
	var totalSeats int
	err := r.db.Get(&totalSeats, `SELECT total_seats FROM buses WHERE id = $1`, req.BusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to fetch bus: %w", err)
	}

	var routeExists bool
	err = r.db.Get(&routeExists, `SELECT EXISTS(SELECT 1 FROM routes WHERE id = $1)`, req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("failed to check route: %w", err)
	}
	if !routeExists {
		return nil, models.ErrRouteNotFound
	}

	schedule := &models.Schedule{
		BusID:          req.BusID,
		RouteID:        req.RouteID,
		DepartureTime:  req.DepartureTime,
		FareAmount:     req.FareAmount,
		AvailableSeats: totalSeats,
		Status:         models.ScheduleStatusActive,
	}
	err = r.db.QueryRow(`
		INSERT INTO bus_schedules (bus_id, route_id, departure_date, departure_time,
		                           fare_amount, available_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, departure_date, created_at`,
		req.BusID, req.RouteID, req.DepartureDate, req.DepartureTime,
		req.FareAmount, totalSeats,
	).Scan(&schedule.ID, &schedule.DepartureDate, &schedule.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

// UpdateScheduleStatus flips a schedule between active and cancelled
func (r *ScheduleRepository) UpdateScheduleStatus(id int, status models.ScheduleStatus) error {
	result, err := r.db.Exec(`UPDATE bus_schedules SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrScheduleNotFound
	}
	return nil
}

// DeleteSchedule removes a schedule unless bookings still reference it
func (r *ScheduleRepository) DeleteSchedule(id int) error {
	var refs int
	err := r.db.Get(&refs, `SELECT COUNT(*) FROM bookings WHERE schedule_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to check schedule references: %w", err)
	}
	if refs > 0 {
		return &models.ReferencedError{Entity: "schedule", Count: refs}
	}

	if _, err := r.db.Exec(`DELETE FROM seats WHERE schedule_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete seats: %w", err)
	}

	result, err := r.db.Exec(`DELETE FROM bus_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrScheduleNotFound
	}
	return nil
}
