package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
)

// DriverHandler serves the driver-management screens
type DriverHandler struct {
	fleet    *services.FleetService
	resolver *services.IdentityResolver
	cache    services.RefCache
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(fleet *services.FleetService, resolver *services.IdentityResolver, cache services.RefCache) *DriverHandler {
	return &DriverHandler{
		fleet:    fleet,
		resolver: resolver,
		cache:    cache,
	}
}

// GetDrivers retrieves the operator's drivers
// GET /api/v1/drivers
func (h *DriverHandler) GetDrivers(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	drivers, err := h.fleet.ListDrivers(c.Request.Context(), operator.OperatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// CreateDriver adds a driver
// POST /api/v1/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	var req models.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.fleet.AddDriver(c.Request.Context(), operator.OperatorID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add driver"})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// UpdateDriver updates a driver
// PUT /api/v1/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	var req models.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.fleet.UpdateDriver(c.Request.Context(), c.Param("id"), operator.OperatorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver updated"})
}

// DeleteDriver removes a driver
// DELETE /api/v1/drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	err := h.fleet.RemoveDriver(c.Request.Context(), c.Param("id"), operator.OperatorID)
	if err != nil {
		if errors.Is(err, services.ErrDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
