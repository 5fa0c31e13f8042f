package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// BusHandler handles fleet admin CRUD
type BusHandler struct {
	busRepo *database.BusRepository
}

// NewBusHandler creates a new BusHandler
func NewBusHandler(busRepo *database.BusRepository) *BusHandler {
	return &BusHandler{busRepo: busRepo}
}

// ListBuses returns the full fleet
func (h *BusHandler) ListBuses(c *gin.Context) {
	buses, err := h.busRepo.ListBuses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   buses,
	})
}

// GetBus returns a single bus by ID
func (h *BusHandler) GetBus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid bus ID",
		})
		return
	}

	bus, err := h.busRepo.GetBusByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   bus,
	})
}

// CreateBus adds a new bus to the fleet
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	bus, err := h.busRepo.CreateBus(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Bus created successfully",
		"data":    bus,
	})
}

// DeleteBus removes a bus that no schedule references
func (h *BusHandler) DeleteBus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid bus ID",
		})
		return
	}

	if err := h.busRepo.DeleteBus(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Bus deleted successfully",
	})
}
