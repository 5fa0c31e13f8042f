package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jagatbilash/bus-booking-backend/internal/config"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/handlers"
	"github.com/jagatbilash/bus-booking-backend/internal/middleware"
	"github.com/jagatbilash/bus-booking-backend/internal/services"
	"github.com/jagatbilash/bus-booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Jagat Bilash Paribahan Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Type assertion needed: db is interface DB, but the transactional
	// repositories need *sqlx.DB
	sqlxDB, ok := db.(*database.PostgresDB)
	if !ok {
		logger.Fatal("Failed to cast database connection to PostgresDB")
	}

	// Initialize repositories
	routeRepo := database.NewRouteRepository(db)
	busRepo := database.NewBusRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	seatRepo := database.NewSeatRepository(sqlxDB.DB)
	userRepo := database.NewUserRepository(db)
	couponRepo := database.NewCouponRepository(db)
	bookingRepo := database.NewBookingRepository(sqlxDB.DB)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	bookingService := services.NewBookingService(bookingRepo, logger)
	couponService := services.NewCouponService(couponRepo, logger)
	authService := services.NewAuthService(userRepo, jwtService, cfg.Security.AdminEmails, cfg.Security.BcryptCost, logger)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	couponHandler := handlers.NewCouponHandler(couponService, couponRepo)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo, seatRepo)
	routeHandler := handlers.NewRouteHandler(routeRepo)
	busHandler := handlers.NewBusHandler(busRepo)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/bookings", bookingHandler.CreateBooking)
		v1.POST("/coupons/validate", couponHandler.ValidateCoupon)
		v1.GET("/schedules", scheduleHandler.SearchSchedules)
		v1.GET("/schedules/seats", scheduleHandler.GetSeats)
		v1.GET("/schedules/:id", scheduleHandler.GetSchedule)
		v1.GET("/routes", routeHandler.ListRoutes)
		v1.GET("/routes/:id", routeHandler.GetRoute)
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// Admin routes (JWT + admin role)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/bookings", bookingHandler.ListBookings)
			admin.GET("/bookings/:id", bookingHandler.GetBooking)
			admin.PUT("/bookings/status", bookingHandler.UpdateBookingStatus)
			admin.DELETE("/bookings/:id", bookingHandler.DeleteBooking)

			admin.GET("/buses", busHandler.ListBuses)
			admin.GET("/buses/:id", busHandler.GetBus)
			admin.POST("/buses", busHandler.CreateBus)
			admin.DELETE("/buses/:id", busHandler.DeleteBus)

			admin.POST("/routes", routeHandler.CreateRoute)
			admin.DELETE("/routes/:id", routeHandler.DeleteRoute)

			admin.GET("/schedules", scheduleHandler.ListSchedules)
			admin.POST("/schedules", scheduleHandler.CreateSchedule)
			admin.PUT("/schedules/:id/status", scheduleHandler.UpdateScheduleStatus)
			admin.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)

			admin.GET("/coupons", couponHandler.ListCoupons)
			admin.POST("/coupons", couponHandler.CreateCoupon)
			admin.PUT("/coupons/:id/status", couponHandler.UpdateCouponStatus)
			admin.DELETE("/coupons/:id", couponHandler.DeleteCoupon)

			admin.GET("/users", userHandler.ListUsers)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests. Every request gets
// an X-Request-ID so log lines can be correlated across the request.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request completed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"version":  version,
		})
	}
}
