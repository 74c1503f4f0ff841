package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
)

// BookingHandler serves the booking-management and dashboard screens
type BookingHandler struct {
	bookings *services.BookingService
	resolver *services.IdentityResolver
	cache    services.RefCache
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *services.BookingService, resolver *services.IdentityResolver, cache services.RefCache) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		resolver: resolver,
		cache:    cache,
	}
}

// cancelBookingRequest models the confirmation the operator gave in the
// cancel dialog. The confirmation is a precondition of the transition,
// not a UI nicety.
type cancelBookingRequest struct {
	Confirmed bool `json:"confirmed"`
}

// GetBookings aggregates the operator's bookings, optionally filtered
// GET /api/v1/bookings?search=
func (h *BookingHandler) GetBookings(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	report, err := h.bookings.Aggregate(c.Request.Context(), operator.OperatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate bookings"})
		return
	}

	records := services.FilterBookings(report.Records, c.Query("search"))
	services.SortByCreatedAtDesc(records)

	c.JSON(http.StatusOK, gin.H{
		"bookings": records,
		"stats":    report.Stats,
	})
}

// GetStats returns the operator's booking statistics for the dashboard
// GET /api/v1/bookings/stats
func (h *BookingHandler) GetStats(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	report, err := h.bookings.Aggregate(c.Request.Context(), operator.OperatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate bookings"})
		return
	}

	c.JSON(http.StatusOK, report.Stats)
}

// CancelBooking cancels a completed booking and returns the freshly
// re-aggregated statistics
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	_, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"), req.Confirmed)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConfirmationRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cancellation requires explicit confirmation",
				"code":  "CONFIRMATION_REQUIRED",
			})
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, services.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
				"code":  "ILLEGAL_TRANSITION",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"stats":   report.Stats,
	})
}
