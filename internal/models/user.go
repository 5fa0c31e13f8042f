package models

import "time"

// User is a registered account or a guest record created implicitly during
// booking. PasswordHash is nil for guests; phone is the de facto natural key
// for guest identity (two bookings with the same phone map to the same user).
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash *string   `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed access token and the user profile
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
