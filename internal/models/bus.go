package models

import "time"

// BusType is the enumerated bus category
type BusType string

const (
	BusTypeACBusiness BusType = "AC_Business"
	BusTypeACEconomy  BusType = "AC_Economy"
	BusTypeNonAC      BusType = "Non_AC"
)

// Bus represents a physical coach in the fleet
type Bus struct {
	ID          int       `json:"id" db:"id"`
	BusName     string    `json:"bus_name" db:"bus_name"`
	BusNumber   string    `json:"bus_number" db:"bus_number"`
	BusType     BusType   `json:"bus_type" db:"bus_type"`
	TotalSeats  int       `json:"total_seats" db:"total_seats"`
	CompanyName string    `json:"company_name" db:"company_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateBusRequest is the admin payload for adding a bus
type CreateBusRequest struct {
	BusName     string  `json:"bus_name" binding:"required"`
	BusNumber   string  `json:"bus_number" binding:"required"`
	BusType     BusType `json:"bus_type"`
	TotalSeats  int     `json:"total_seats"`
	CompanyName string  `json:"company_name"`
}
