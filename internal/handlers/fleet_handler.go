package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
)

// FleetHandler serves the fleet-management screens
type FleetHandler struct {
	fleet    *services.FleetService
	resolver *services.IdentityResolver
	cache    services.RefCache
}

// NewFleetHandler creates a new FleetHandler
func NewFleetHandler(fleet *services.FleetService, resolver *services.IdentityResolver, cache services.RefCache) *FleetHandler {
	return &FleetHandler{
		fleet:    fleet,
		resolver: resolver,
		cache:    cache,
	}
}

// GetBuses retrieves the operator's buses with their seat configurations
// GET /api/v1/buses
func (h *FleetHandler) GetBuses(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	buses, err := h.fleet.FetchBusesAndSeats(c.Request.Context(), operator.OperatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch buses"})
		return
	}

	c.JSON(http.StatusOK, buses)
}

// CreateBus creates a bus from the fleet form
// POST /api/v1/buses
func (h *FleetHandler) CreateBus(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	var req models.SubmitBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.BusID = nil

	busID, err := h.fleet.SubmitBus(c.Request.Context(), operator.OperatorID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bus"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bus_id": busID})
}

// UpdateBus updates a bus from the fleet form
// PUT /api/v1/buses/:id
func (h *FleetHandler) UpdateBus(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	var req models.SubmitBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	busID := c.Param("id")
	req.BusID = &busID

	savedID, err := h.fleet.SubmitBus(c.Request.Context(), operator.OperatorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus_id": savedID})
}

// DeleteBus deletes a bus and its seat configuration
// DELETE /api/v1/buses/:id
func (h *FleetHandler) DeleteBus(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	err := h.fleet.DeleteBus(c.Request.Context(), c.Param("id"), operator.OperatorID)
	if err != nil {
		if errors.Is(err, services.ErrBusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
