package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// RouteRepository handles route database operations
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// ListRoutes returns all routes ordered by origin then destination
func (r *RouteRepository) ListRoutes() ([]models.Route, error) {
	var routes []models.Route
	err := r.db.Select(&routes, `
		SELECT id, from_location, to_location, distance_km,
		       estimated_duration_hours, created_at
		FROM routes
		ORDER BY from_location, to_location`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch routes: %w", err)
	}
	return routes, nil
}

// GetRouteByID retrieves a single route
func (r *RouteRepository) GetRouteByID(id int) (*models.Route, error) {
	route := &models.Route{}
	err := r.db.Get(route, `
		SELECT id, from_location, to_location, distance_km,
		       estimated_duration_hours, created_at
		FROM routes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	return route, nil
}

// CreateRoute inserts a new route and returns it with its assigned ID
func (r *RouteRepository) CreateRoute(req *models.CreateRouteRequest) (*models.Route, error) {
	route := &models.Route{
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		DistanceKM:    req.DistanceKM,
		DurationHours: req.DurationHours,
	}
	err := r.db.QueryRow(`
		INSERT INTO routes (from_location, to_location, distance_km, estimated_duration_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		req.FromLocation, req.ToLocation, req.DistanceKM, req.DurationHours,
	).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

// DeleteRoute removes a route unless a schedule still references it
func (r *RouteRepository) DeleteRoute(id int) error {
	var refs int
	err := r.db.Get(&refs, `SELECT COUNT(*) FROM bus_schedules WHERE route_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to check route references: %w", err)
	}
	if refs > 0 {
		return &models.ReferencedError{Entity: "route", Count: refs}
	}

	result, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrRouteNotFound
	}
	return nil
}
