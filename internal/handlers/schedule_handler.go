package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// ScheduleHandler handles schedule search, seat maps and admin CRUD
type ScheduleHandler struct {
	scheduleRepo *database.ScheduleRepository
	seatRepo     *database.SeatRepository
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleRepo *database.ScheduleRepository, seatRepo *database.SeatRepository) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleRepo: scheduleRepo,
		seatRepo:     seatRepo,
	}
}

// SearchSchedules returns active upcoming schedules matching optional filters
// @Summary Search schedules
// @Tags Schedules
// @Produce json
// @Param route_id query int false "Route ID"
// @Param from query string false "Origin city"
// @Param to query string false "Destination city"
// @Param date query string false "Earliest departure date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{} "Matching schedules"
// @Router /api/v1/schedules [get]
func (h *ScheduleHandler) SearchSchedules(c *gin.Context) {
	routeID, _ := strconv.Atoi(c.Query("route_id"))
	from := c.Query("from")
	to := c.Query("to")
	date := c.Query("date")

	schedules, err := h.scheduleRepo.SearchSchedules(routeID, from, to, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   schedules,
	})
}

// GetSchedule returns a single schedule by ID
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid schedule ID",
		})
		return
	}

	schedule, err := h.scheduleRepo.GetScheduleByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   schedule,
	})
}

// GetSeats returns the 40-seat map for a schedule, creating the grid on
// first access
// @Summary Get seat map
// @Tags Schedules
// @Produce json
// @Param schedule_id query int true "Schedule ID"
// @Success 200 {object} map[string]interface{} "Seat map"
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Router /api/v1/schedules/seats [get]
func (h *ScheduleHandler) GetSeats(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Query("schedule_id"))
	if err != nil || scheduleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "schedule_id query parameter is required",
		})
		return
	}

	seats, err := h.seatRepo.GetSeatsBySchedule(scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   seats,
	})
}

// ListSchedules returns all schedules, cancelled included, for the admin
// dashboard
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleRepo.ListSchedules()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   schedules,
	})
}

// CreateSchedule adds a new schedule
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	schedule, err := h.scheduleRepo.CreateSchedule(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Schedule created successfully",
		"data":    schedule,
	})
}

// UpdateScheduleStatus flips a schedule between active and cancelled
func (h *ScheduleHandler) UpdateScheduleStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid schedule ID",
		})
		return
	}

	var req struct {
		Status models.ScheduleStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.Status != models.ScheduleStatusActive && req.Status != models.ScheduleStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Status must be active or cancelled",
		})
		return
	}

	if err := h.scheduleRepo.UpdateScheduleStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Schedule status updated",
	})
}

// DeleteSchedule removes a schedule with no bookings
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid schedule ID",
		})
		return
	}

	if err := h.scheduleRepo.DeleteSchedule(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Schedule deleted successfully",
	})
}
