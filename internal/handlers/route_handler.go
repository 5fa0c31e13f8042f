package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jagatbilash/bus-booking-backend/internal/database"
	"github.com/jagatbilash/bus-booking-backend/internal/models"
)

// RouteHandler handles route listing and admin CRUD
type RouteHandler struct {
	routeRepo *database.RouteRepository
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo}
}

// ListRoutes returns all routes
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	routes, err := h.routeRepo.ListRoutes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   routes,
	})
}

// GetRoute returns a single route by ID
func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid route ID",
		})
		return
	}

	route, err := h.routeRepo.GetRouteByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   route,
	})
}

// CreateRoute adds a new route
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	route, err := h.routeRepo.CreateRoute(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Route created successfully",
		"data":    route,
	})
}

// DeleteRoute removes a route that no schedule references
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid route ID",
		})
		return
	}

	if err := h.routeRepo.DeleteRoute(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Route deleted successfully",
	})
}
