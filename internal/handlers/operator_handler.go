package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/middleware"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
)

// OperatorHandler serves the operator profile screens
type OperatorHandler struct {
	resolver *services.IdentityResolver
	cache    services.RefCache
}

// NewOperatorHandler creates a new OperatorHandler
func NewOperatorHandler(resolver *services.IdentityResolver, cache services.RefCache) *OperatorHandler {
	return &OperatorHandler{
		resolver: resolver,
		cache:    cache,
	}
}

// GetProfile resolves and returns the canonical operator record
// GET /api/v1/operator/profile
func (h *OperatorHandler) GetProfile(c *gin.Context) {
	operator, ok := resolveOperator(c, h.resolver, h.cache)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, operator)
}

// UpdateProfile upserts the operator profile: a merge against the
// resolved record when resolution succeeds, a create keyed by the
// operator ID only when no record exists yet.
// PUT /api/v1/operator/profile
func (h *OperatorHandler) UpdateProfile(c *gin.Context) {
	octx, exists := middleware.GetOperatorContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	ref := loadRef(ctx, h.cache, octx)

	resolved, err := h.resolver.Resolve(ctx, octx.SessionKey, ref)
	knownExists := err == nil
	if err != nil && !errors.Is(err, services.ErrOperatorNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve operator profile"})
		return
	}
	if knownExists {
		ref.RecordID = resolved.RecordID
	}

	operator, err := h.resolver.Save(ctx, octx.SessionKey, ref, &req, knownExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save operator profile"})
		return
	}

	c.JSON(http.StatusOK, operator)
}
