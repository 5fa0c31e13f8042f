package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByEmail retrieves a user by email, including the password hash
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `
		SELECT id, name, email, phone, password, created_at
		FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// GetUserByPhone retrieves a user by phone number
func (r *UserRepository) GetUserByPhone(phone string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `
		SELECT id, name, email, phone, password, created_at
		FROM users WHERE phone = $1`, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `
		SELECT id, name, email, phone, password, created_at
		FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a registered account with a password hash. Guest
// records created during booking take the other path, inside the booking
// transaction.
func (r *UserRepository) CreateUser(name, email, phone, passwordHash string) (*models.User, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, models.ErrEmailExists
	}

	user := &models.User{
		Name:         name,
		Email:        &email,
		Phone:        phone,
		PasswordHash: &passwordHash,
	}
	err = r.db.QueryRow(`
		INSERT INTO users (name, email, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		name, email, phone, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users, newest first
func (r *UserRepository) ListUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Select(&users, `
		SELECT id, name, email, phone, created_at
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and, via cascade, their bookings
func (r *UserRepository) DeleteUser(id int) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// SetPassword upgrades a guest record to a registered account
func (r *UserRepository) SetPassword(userID int, name, email, passwordHash string) error {
	result, err := r.db.Exec(`
		UPDATE users SET name = $1, email = $2, password = $3
		WHERE id = $4`,
		name, email, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
