package models

import "time"

// ScheduleStatus represents the lifecycle state of a schedule
type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Schedule is one bus's trip instance on a route and date, with its own
// fare and seat inventory. available_seats is decremented only inside the
// booking transaction.
type Schedule struct {
	ID             int            `json:"id" db:"id"`
	BusID          int            `json:"bus_id" db:"bus_id"`
	RouteID        int            `json:"route_id" db:"route_id"`
	DepartureDate  time.Time      `json:"departure_date" db:"departure_date"`
	DepartureTime  string         `json:"departure_time" db:"departure_time"`
	FareAmount     float64        `json:"fare_amount" db:"fare_amount"`
	AvailableSeats int            `json:"available_seats" db:"available_seats"`
	Status         ScheduleStatus `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// ScheduleSearchResult is the joined row returned by the public search
type ScheduleSearchResult struct {
	ID             int     `json:"id" db:"id"`
	DepartureDate  string  `json:"departure_date" db:"departure_date"`
	DepartureTime  string  `json:"departure_time" db:"departure_time"`
	FareAmount     float64 `json:"fare_amount" db:"fare_amount"`
	AvailableSeats int     `json:"available_seats" db:"available_seats"`
	Status         string  `json:"status" db:"status"`
	BusName        string  `json:"bus_name" db:"bus_name"`
	BusNumber      string  `json:"bus_number" db:"bus_number"`
	BusType        string  `json:"bus_type" db:"bus_type"`
	TotalSeats     int     `json:"total_seats" db:"total_seats"`
	FromLocation   string  `json:"from_location" db:"from_location"`
	ToLocation     string  `json:"to_location" db:"to_location"`
	DistanceKM     int     `json:"distance_km" db:"distance_km"`
}

// CreateScheduleRequest is the admin payload for adding a schedule
type CreateScheduleRequest struct {
	BusID         int     `json:"bus_id" binding:"required"`
	RouteID       int     `json:"route_id" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	DepartureTime string  `json:"departure_time" binding:"required"`
	FareAmount    float64 `json:"fare_amount" binding:"required,gt=0"`
}
