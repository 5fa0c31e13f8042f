package models

import "time"

// Route represents a from/to city pair served by the operator
type Route struct {
	ID            int       `json:"id" db:"id"`
	FromLocation  string    `json:"from_location" db:"from_location"`
	ToLocation    string    `json:"to_location" db:"to_location"`
	DistanceKM    int       `json:"distance_km" db:"distance_km"`
	DurationHours float64   `json:"estimated_duration_hours" db:"estimated_duration_hours"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateRouteRequest is the admin payload for adding a route
type CreateRouteRequest struct {
	FromLocation  string  `json:"from_location" binding:"required"`
	ToLocation    string  `json:"to_location" binding:"required"`
	DistanceKM    int     `json:"distance_km" binding:"gte=0"`
	DurationHours float64 `json:"estimated_duration_hours" binding:"gte=0"`
}
