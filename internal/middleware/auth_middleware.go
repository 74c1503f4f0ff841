package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/utils"
	"github.com/Pravinkumar0908/trip-bus-sub002/pkg/session"
)

// OperatorContextKey is the key used to store operator information in Gin context
const OperatorContextKey = "operator"

// OperatorContext carries the opaque operator identifiers the external
// auth service placed in the session token, plus the device the request
// came from. It seeds the identity resolver; it is never treated as the
// canonical identity itself.
type OperatorContext struct {
	SessionKey string           `json:"session_key"` // token subject, scopes the identity cache
	RecordID   string           `json:"record_id"`
	OperatorID string           `json:"operator_id"`
	Email      string           `json:"email"`
	Device     utils.DeviceInfo `json:"device"`
}

// SessionMiddleware creates a middleware that validates session tokens
// issued by the external auth service
func SessionMiddleware(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Token cannot be empty",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(tokenString)
		if err != nil {
			if sessions.IsTokenExpired(tokenString) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "token_expired",
					"message": "Session token has expired. Please sign in again.",
					"code":    "TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "invalid_token",
					"message": "Invalid session token",
					"code":    "INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		sessionKey := claims.Subject
		if sessionKey == "" {
			sessionKey = claims.OperatorID
		}

		c.Set(OperatorContextKey, OperatorContext{
			SessionKey: sessionKey,
			RecordID:   claims.RecordID,
			OperatorID: claims.OperatorID,
			Email:      claims.Email,
			Device:     utils.ParseUserAgent(c.Request.UserAgent()),
		})

		c.Next()
	}
}

// GetOperatorContext retrieves the operator context from the Gin context
func GetOperatorContext(c *gin.Context) (OperatorContext, bool) {
	value, exists := c.Get(OperatorContextKey)
	if !exists {
		return OperatorContext{}, false
	}

	octx, ok := value.(OperatorContext)
	return octx, ok
}
