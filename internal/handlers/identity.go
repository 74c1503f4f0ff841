package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/middleware"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
)

// loadRef builds the resolver input for a request: the cached reference
// when one exists, with any gaps filled from the session claims.
func loadRef(ctx context.Context, cache services.RefCache, octx middleware.OperatorContext) *models.LocalOperatorRef {
	ref, err := cache.GetRef(ctx, octx.SessionKey)
	if err != nil || ref == nil {
		ref = &models.LocalOperatorRef{}
	}

	if ref.RecordID == "" {
		ref.RecordID = octx.RecordID
	}
	if ref.OperatorID == "" {
		ref.OperatorID = octx.OperatorID
	}
	if ref.Email == "" {
		ref.Email = octx.Email
	}
	ref.Device = octx.Device

	return ref
}

// resolveOperator establishes the canonical operator for a request and
// writes the error response itself on failure. A NotFound after every
// lookup strategy is terminal: the screen must send the operator back
// through authentication, never continue on a partial identity.
func resolveOperator(c *gin.Context, resolver *services.IdentityResolver, cache services.RefCache) (*models.OperatorIdentity, bool) {
	octx, exists := middleware.GetOperatorContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	ctx := c.Request.Context()
	ref := loadRef(ctx, cache, octx)

	operator, err := resolver.Resolve(ctx, octx.SessionKey, ref)
	if err != nil {
		if errors.Is(err, services.ErrOperatorNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "operator_not_found",
				"message": "Your operator profile could not be located. Please sign in again.",
				"code":    "REAUTH_REQUIRED",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve operator profile"})
		return nil, false
	}

	return operator, true
}
