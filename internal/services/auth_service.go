package services

import (
	"errors"
	"strings"

	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
	"github.com/jagatbilash/bus-booking-backend/pkg/jwt"
	"github.com/jagatbilash/bus-booking-backend/pkg/validator"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login responses don't reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration and login
type AuthService struct {
	userRepo    *database.UserRepository
	jwtService  *jwt.Service
	adminEmails map[string]bool
	bcryptCost  int
	logger      *logrus.Logger
}

// NewAuthService creates a new AuthService. Emails in adminEmails get the
// admin role on their tokens; everyone else is a regular user.
func NewAuthService(userRepo *database.UserRepository, jwtService *jwt.Service, adminEmails []string, bcryptCost int, logger *logrus.Logger) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = true
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		adminEmails: admins,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Register creates an account. If the phone already belongs to a guest
// record from a past booking, that record is upgraded in place so the
// user keeps their booking history.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if err := validator.ValidatePhone(req.Phone); err != nil {
		return nil, models.NewValidationError("invalid phone number: %v", err)
	}
	phone := validator.NormalizePhone(req.Phone)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByPhone(phone)
	if err == nil {
		if existing.PasswordHash != nil {
			return nil, models.ErrPhoneExists
		}
		if err := s.userRepo.SetPassword(existing.ID, req.Name, req.Email, string(hash)); err != nil {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{
			"user_id": existing.ID,
			"email":   req.Email,
		}).Info("Guest account upgraded to registered user")
		return s.userRepo.GetUserByID(existing.ID)
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(req.Name, req.Email, phone, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   req.Email,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues an access token. The client's
// User-Agent is parsed into the audit log entry.
func (s *AuthService) Login(req *models.LoginRequest, userAgent string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.WithField("email", req.Email).Warn("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	role := "user"
	if s.adminEmails[strings.ToLower(req.Email)] {
		role = "admin"
	}
	token, err := s.jwtService.GenerateAccessToken(user.ID, req.Email, role)
	if err != nil {
		return nil, err
	}

	ua := user_agent.New(userAgent)
	browser, browserVersion := ua.Browser()
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   req.Email,
		"browser": browser + " " + browserVersion,
		"os":      ua.OS(),
		"mobile":  ua.Mobile(),
	}).Info("User logged in")

	return &models.LoginResponse{
		AccessToken: token,
		User:        user,
	}, nil
}
