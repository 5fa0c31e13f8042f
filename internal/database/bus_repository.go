package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// BusRepository handles bus database operations
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

// ListBuses returns the full fleet ordered by name
func (r *BusRepository) ListBuses() ([]models.Bus, error) {
	var buses []models.Bus
	err := r.db.Select(&buses, `
		SELECT id, bus_name, bus_number, bus_type, total_seats, company_name, created_at
		FROM buses
		ORDER BY bus_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buses: %w", err)
	}
	return buses, nil
}

// GetBusByID retrieves a single bus
func (r *BusRepository) GetBusByID(id int) (*models.Bus, error) {
	bus := &models.Bus{}
	err := r.db.Get(bus, `
		SELECT id, bus_name, bus_number, bus_type, total_seats, company_name, created_at
		FROM buses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to fetch bus: %w", err)
	}
	return bus, nil
}

// CreateBus inserts a new bus. Bus numbers are unique across the fleet.
func (r *BusRepository) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM buses WHERE bus_number = $1`, req.BusNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check bus number: %w", err)
	}
	if count > 0 {
		return nil, models.ErrBusNumberExists
	}

	busType := req.BusType
	if busType == "" {
		busType = models.BusTypeNonAC
	}
	totalSeats := req.TotalSeats
	if totalSeats == 0 {
		totalSeats = models.SeatGridTotal
	}

	bus := &models.Bus{
		BusName:     req.BusName,
		BusNumber:   req.BusNumber,
		BusType:     busType,
		TotalSeats:  totalSeats,
		CompanyName: req.CompanyName,
	}
	err = r.db.QueryRow(`
		INSERT INTO buses (bus_name, bus_number, bus_type, total_seats, company_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		bus.BusName, bus.BusNumber, bus.BusType, bus.TotalSeats, bus.CompanyName,
	).Scan(&bus.ID, &bus.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}
	return bus, nil
}

// DeleteBus removes a bus unless a schedule still references it
func (r *BusRepository) DeleteBus(id int) error {
	var refs int
	err := r.db.Get(&refs, `SELECT COUNT(*) FROM bus_schedules WHERE bus_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to check bus references: %w", err)
	}
	if refs > 0 {
		return &models.ReferencedError{Entity: "bus", Count: refs}
	}

	result, err := r.db.Exec(`DELETE FROM buses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bus: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrBusNotFound
	}
	return nil
}
